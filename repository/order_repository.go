package repository

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// FindDeliveryMethod resolves a delivery method by numeric id or by name.
// Name matching ignores case and treats underscores as spaces, so "dine_in"
// resolves "Dine In". An empty key resolves the first active method.
func (r *OrderRepository) FindDeliveryMethod(idOrName string) (*models.DeliveryMethod, error) {
	key := strings.TrimSpace(idOrName)
	query := r.DB.Where("is_active = ?", true)
	switch id, err := strconv.ParseUint(key, 10, 64); {
	case key == "":
		query = query.Order("id asc")
	case err == nil:
		query = query.Where("id = ?", id)
	default:
		name := strings.ToLower(strings.ReplaceAll(key, "_", " "))
		query = query.Where("LOWER(name) = ?", name)
	}

	var method models.DeliveryMethod
	err := query.First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *OrderRepository) FindPaymentMethod(id uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *OrderRepository) FindOrderStatus(name string) (*models.OrderStatus, error) {
	var status models.OrderStatus
	err := r.DB.Where("name = ?", name).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *OrderRepository) ListOrderStatuses() ([]models.OrderStatus, error) {
	var statuses []models.OrderStatus
	err := r.DB.Where("is_active = ?", true).Order("display_order asc").Find(&statuses).Error
	return statuses, err
}

func (r *OrderRepository) ListDeliveryMethods() ([]models.DeliveryMethod, error) {
	var methods []models.DeliveryMethod
	err := r.DB.Where("is_active = ?", true).Order("id asc").Find(&methods).Error
	return methods, err
}

func (r *OrderRepository) ListPaymentMethods() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.DB.Where("is_active = ?", true).Order("id asc").Find(&methods).Error
	return methods, err
}

func (r *OrderRepository) CreateOrder(o *models.Order) error {
	return r.DB.Omit(clause.Associations).Create(o).Error
}

func (r *OrderRepository) CreateOrderLine(line *models.OrderItem) error {
	return r.DB.Omit(clause.Associations).Create(line).Error
}

func (r *OrderRepository) CountOrdersByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

type HistoryQuery struct {
	UserID uint
	Status string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// ListHistory returns a page of the user's orders, newest first, each with
// its first line and that line's product for a thumbnail.
func (r *OrderRepository) ListHistory(q HistoryQuery) ([]models.Order, int64, error) {
	query := r.DB.Model(&models.Order{}).Where("orders.user_id = ?", q.UserID)
	if q.Status != "" {
		query = query.Joins("JOIN order_statuses ON order_statuses.id = orders.status_id").
			Where("order_statuses.name = ?", q.Status)
	}
	if q.From != nil {
		query = query.Where("orders.order_date >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("orders.order_date <= ?", *q.To)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("Status").
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("OrderItems.Product").
		Order("orders.order_date desc, orders.id desc").
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) preloadDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User.Profile").
		Preload("Status").
		Preload("DeliveryMethod").
		Preload("PaymentMethod").
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("OrderItems.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("OrderItems.Size").
		Preload("OrderItems.Temperature")
}

// FindOrderForUser returns nil when the order does not exist or belongs to
// another user.
func (r *OrderRepository) FindOrderForUser(userID, orderID uint) (*models.Order, error) {
	var o models.Order
	err := r.preloadDetail(r.DB).Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindOrder(orderID uint) (*models.Order, error) {
	var o models.Order
	err := r.preloadDetail(r.DB).First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListOrders(page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := r.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := r.DB.
		Preload("User").
		Preload("Status").
		Order("created_at desc, id desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) AllOrders() ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.
		Preload("User").
		Preload("Status").
		Preload("DeliveryMethod").
		Preload("PaymentMethod").
		Order("id asc").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) UpdateStatus(orderID, statusID uint) (bool, error) {
	res := r.DB.Model(&models.Order{}).Where("id = ?", orderID).Update("status_id", statusID)
	return res.RowsAffected > 0, res.Error
}
