package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
	"github.com/Kariqs/kopi-api/utils"
)

const defaultPaymentMethodID = "1"

// IDOrName accepts either a JSON number or a JSON string, so clients may
// send {"deliveryMethod": 2} or {"deliveryMethod": "dine_in"}.
type IDOrName string

func (v *IDOrName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = IDOrName(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = IDOrName(n.String())
	return nil
}

// CheckoutInput holds the optional overrides for a checkout. Empty contact
// fields fall back to the user's profile.
type CheckoutInput struct {
	Email           string   `json:"email" form:"email"`
	FullName        string   `json:"fullName" form:"fullName"`
	Address         string   `json:"address" form:"address"`
	DeliveryMethod  IDOrName `json:"deliveryMethod" form:"deliveryMethod"`
	PaymentMethodID IDOrName `json:"paymentMethodId" form:"paymentMethodId"`
}

type CheckoutResult struct {
	OrderID        uint      `json:"id"`
	OrderNumber    string    `json:"orderNumber"`
	Status         string    `json:"status"`
	Email          string    `json:"email"`
	FullName       string    `json:"fullName"`
	Address        string    `json:"deliveryAddress"`
	DeliveryMethod string    `json:"deliveryMethod"`
	PaymentMethod  string    `json:"paymentMethod"`
	Subtotal       int64     `json:"subtotal"`
	DeliveryFee    int64     `json:"deliveryFee"`
	TaxAmount      int64     `json:"taxAmount"`
	Total          int64     `json:"total"`
	ItemCount      int       `json:"itemCount"`
	OrderDate      time.Time `json:"orderDate"`
}

type CheckoutService struct {
	Store    *repository.Store
	Notifier OrderNotifier
	Now      func() time.Time
}

func NewCheckoutService(store *repository.Store, notifier OrderNotifier) *CheckoutService {
	return &CheckoutService{Store: store, Notifier: notifier, Now: time.Now}
}

// Checkout turns the user's cart into a pending order. Every read and write
// runs in one transaction; any failure leaves stock and cart untouched.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*CheckoutResult, error) {
	started := time.Now()
	var result *CheckoutResult

	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		result, err = s.checkout(tx, userID, input)
		return err
	})
	if err != nil {
		status := "failed"
		if KindOf(err) == KindValidation {
			status = "rejected"
		}
		utils.LogEvent(utils.LogFields{
			Component:  "checkout",
			Step:       "commit",
			Status:     status,
			UserID:     userID,
			DurationMS: time.Since(started).Milliseconds(),
			Message:    err.Error(),
		})
		return nil, err
	}

	utils.LogEvent(utils.LogFields{
		Component:   "checkout",
		Step:        "commit",
		Status:      "committed",
		UserID:      userID,
		OrderNumber: result.OrderNumber,
		DurationMS:  time.Since(started).Milliseconds(),
	})

	if s.Notifier != nil {
		s.Notifier.OrderPlaced(ctx, OrderPlacedEvent{
			Type:        "order_placed",
			OrderID:     result.OrderID,
			OrderNumber: result.OrderNumber,
			UserID:      userID,
			Status:      result.Status,
			Total:       result.Total,
			ItemCount:   result.ItemCount,
			PlacedAt:    result.OrderDate,
		})
	}
	return result, nil
}

func (s *CheckoutService) checkout(tx *repository.Store, userID uint, input CheckoutInput) (*CheckoutResult, error) {
	lines, err := tx.Carts.FindLinesByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if err := lockAndCheckStock(tx, lines); err != nil {
		return nil, err
	}
	subtotal := Subtotal(lines)

	delivery, err := tx.Orders.FindDeliveryMethod(string(input.DeliveryMethod))
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, ErrDeliveryMethodNotFound
	}

	payment, err := resolvePaymentMethod(tx, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	email, fullName, address, err := resolveContact(tx, userID, input)
	if err != nil {
		return nil, err
	}

	pending, err := tx.Orders.FindOrderStatus(models.StatusPending)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, ErrPendingStatusMissing
	}

	now := s.Now()
	order := models.Order{
		OrderNumber:      NewOrderNumber(now),
		UserID:           userID,
		StatusID:         pending.ID,
		ContactEmail:     email,
		ContactName:      fullName,
		DeliveryAddress:  address,
		DeliveryMethodID: delivery.ID,
		PaymentMethodID:  payment.ID,
		Subtotal:         subtotal,
		DeliveryFee:      delivery.BaseFee,
		TaxAmount:        0,
		Total:            subtotal + delivery.BaseFee,
		OrderDate:        now,
	}
	if err := tx.Orders.CreateOrder(&order); err != nil {
		return nil, err
	}

	for _, line := range lines {
		orderLine := models.OrderItem{
			OrderID:       order.ID,
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			SizeID:        line.SizeID,
			TemperatureID: line.TemperatureID,
			UnitPrice:     LinePrice(line.Product, line.Size, line.Temperature),
			IsFlashSale:   line.Product.IsFlashSale,
		}
		if err := tx.Orders.CreateOrderLine(&orderLine); err != nil {
			return nil, err
		}
		if err := tx.Catalog.DecrementStock(line.ProductID, line.Quantity); err != nil {
			if errors.Is(err, repository.ErrStockConflict) {
				return nil, stockConflict(tx, line)
			}
			return nil, err
		}
	}

	if err := tx.Carts.DeleteLinesByUser(userID); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         pending.Name,
		Email:          email,
		FullName:       fullName,
		Address:        address,
		DeliveryMethod: delivery.Name,
		PaymentMethod:  payment.Name,
		Subtotal:       order.Subtotal,
		DeliveryFee:    order.DeliveryFee,
		TaxAmount:      order.TaxAmount,
		Total:          order.Total,
		ItemCount:      len(lines),
		OrderDate:      order.OrderDate,
	}, nil
}

// lockAndCheckStock locks the cart's products, replaces each line's product
// with the locked row and verifies the summed quantity per product against
// its stock. Lines are checked in cart order so the first offending product
// is the one reported.
func lockAndCheckStock(tx *repository.Store, lines []models.CartItem) error {
	ids := make([]uint, 0, len(lines))
	required := make(map[uint]int, len(lines))
	for _, line := range lines {
		if _, seen := required[line.ProductID]; !seen {
			ids = append(ids, line.ProductID)
		}
		required[line.ProductID] += line.Quantity
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := tx.Catalog.LockProducts(ids)
	if err != nil {
		return err
	}

	for i := range lines {
		product, ok := products[lines[i].ProductID]
		if !ok || !product.IsActive {
			return ErrProductUnavailable
		}
		if product.Stock < required[product.ID] {
			return &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   required[product.ID],
				Available:   product.Stock,
			}
		}
		lines[i].Product = product
	}
	return nil
}

func resolvePaymentMethod(tx *repository.Store, raw IDOrName) (*models.PaymentMethod, error) {
	key := strings.TrimSpace(string(raw))
	if key == "" {
		key = defaultPaymentMethodID
	}
	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil || id == 0 {
		return nil, ErrPaymentMethodNotFound
	}
	payment, err := tx.Orders.FindPaymentMethod(uint(id))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentMethodNotFound
	}
	return payment, nil
}

// resolveContact fills missing contact fields from the account and its
// profile.
func resolveContact(tx *repository.Store, userID uint, input CheckoutInput) (email, fullName, address string, err error) {
	email = strings.TrimSpace(input.Email)
	fullName = strings.TrimSpace(input.FullName)
	address = strings.TrimSpace(input.Address)

	if email == "" || fullName == "" || address == "" {
		user, err := tx.Users.FindByID(userID)
		if err != nil {
			return "", "", "", err
		}
		if user != nil {
			if email == "" {
				email = user.Email
			}
			if user.Profile != nil {
				if fullName == "" {
					fullName = strings.TrimSpace(user.Profile.FullName)
				}
				if address == "" {
					address = strings.TrimSpace(user.Profile.Address)
				}
			}
		}
	}

	if email == "" || fullName == "" || address == "" {
		return "", "", "", ErrMissingContactInfo
	}
	return email, fullName, address, nil
}

// stockConflict reports a decrement that lost a race after the stock check.
func stockConflict(tx *repository.Store, line models.CartItem) error {
	available := 0
	if product, err := tx.Catalog.FindProduct(line.ProductID); err == nil && product != nil {
		available = product.Stock
	}
	return &InsufficientStockError{
		ProductID:   line.ProductID,
		ProductName: line.Product.Name,
		Requested:   line.Quantity,
		Available:   available,
	}
}
