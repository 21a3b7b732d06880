package repository

import (
	"errors"
	"strings"

	"github.com/Kariqs/kopi-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockConflict is returned by DecrementStock when the row no longer holds
// enough units.
var ErrStockConflict = errors.New("insufficient stock")

type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

type ProductQuery struct {
	Search      string
	CategoryID  uint
	IsFavorite  *bool
	IsFlashSale *bool
	MinPrice    *int64
	MaxPrice    *int64
	SortBy      string
	Order       string
	Page        int
	Limit       int
}

var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
	"createdAt":  "created_at",
	"stock":      "stock",
}

// ListProducts returns one page of active products and the total match count.
func (r *CatalogRepository) ListProducts(q ProductQuery) ([]models.Product, int64, error) {
	query := r.DB.Model(&models.Product{}).Where("is_active = ?", true)
	if q.Search != "" {
		query = query.Where("name LIKE ?", "%"+q.Search+"%")
	}
	if q.CategoryID != 0 {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.IsFavorite != nil {
		query = query.Where("is_favorite = ?", *q.IsFavorite)
	}
	if q.IsFlashSale != nil {
		query = query.Where("is_flash_sale = ?", *q.IsFlashSale)
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := productSortColumns[q.SortBy]
	if !ok {
		column = "id"
	}
	direction := "asc"
	if strings.EqualFold(q.Order, "desc") {
		direction = "desc"
	}

	var products []models.Product
	err := query.Preload("Category").
		Order(column + " " + direction).
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&products).Error
	return products, total, err
}

func (r *CatalogRepository) FindProduct(id uint) (*models.Product, error) {
	var p models.Product
	err := r.DB.Preload("Category").Preload("Images").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LockProducts loads the given products with SELECT ... FOR UPDATE so that
// concurrent checkouts touching the same rows are serialised.
func (r *CatalogRepository) LockProducts(ids []uint) (map[uint]models.Product, error) {
	var products []models.Product
	if len(ids) > 0 {
		if err := r.DB.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).Find(&products).Error; err != nil {
			return nil, err
		}
	}
	out := make(map[uint]models.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// DecrementStock subtracts amount only while the row still has that many
// units left. It returns ErrStockConflict when no row was updated.
func (r *CatalogRepository) DecrementStock(productID uint, amount int) error {
	res := r.DB.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, amount).
		UpdateColumn("stock", gorm.Expr("stock - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *CatalogRepository) SetStock(productID uint, stock int) (bool, error) {
	res := r.DB.Model(&models.Product{}).Where("id = ?", productID).UpdateColumn("stock", stock)
	return res.RowsAffected > 0, res.Error
}

func (r *CatalogRepository) CreateProduct(p *models.Product) error {
	return r.DB.Omit(clause.Associations).Create(p).Error
}

func (r *CatalogRepository) UpdateProduct(id uint, fields map[string]any) error {
	return r.DB.Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CatalogRepository) DeleteProduct(id uint) (bool, error) {
	res := r.DB.Delete(&models.Product{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *CatalogRepository) AddProductImage(img *models.ProductImage) error {
	return r.DB.Create(img).Error
}

func (r *CatalogRepository) AllProducts() ([]models.Product, error) {
	var products []models.Product
	err := r.DB.Preload("Category").Order("id asc").Find(&products).Error
	return products, err
}

func (r *CatalogRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.Where("is_active = ?", true).Order("id asc").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) FindCategory(id uint) (*models.Category, error) {
	var c models.Category
	err := r.DB.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryNameTaken also counts soft-deleted categories, whose names still
// hold the unique index.
func (r *CatalogRepository) CategoryNameTaken(name string, exceptID uint) (bool, error) {
	var count int64
	err := r.DB.Unscoped().Model(&models.Category{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *CatalogRepository) CreateCategory(c *models.Category) error {
	return r.DB.Create(c).Error
}

func (r *CatalogRepository) UpdateCategory(id uint, fields map[string]any) error {
	return r.DB.Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CatalogRepository) CountProductsInCategory(id uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) DeleteCategory(id uint) error {
	return r.DB.Delete(&models.Category{}, id).Error
}

func (r *CatalogRepository) ListSizes() ([]models.ProductSize, error) {
	var sizes []models.ProductSize
	err := r.DB.Where("is_active = ?", true).Order("id asc").Find(&sizes).Error
	return sizes, err
}

func (r *CatalogRepository) ListTemperatures() ([]models.ProductTemperature, error) {
	var temps []models.ProductTemperature
	err := r.DB.Where("is_active = ?", true).Order("id asc").Find(&temps).Error
	return temps, err
}

func (r *CatalogRepository) FindSize(id uint) (*models.ProductSize, error) {
	var s models.ProductSize
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) FindTemperature(id uint) (*models.ProductTemperature, error) {
	var t models.ProductTemperature
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
