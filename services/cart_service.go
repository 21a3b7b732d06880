package services

import (
	"context"
	"strings"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
)

type AddToCartInput struct {
	ProductID     uint  `json:"productId" binding:"required"`
	Quantity      int   `json:"quantity"`
	SizeID        *uint `json:"sizeId"`
	TemperatureID *uint `json:"temperatureId"`
}

type CartLineView struct {
	ID            uint   `json:"id"`
	ProductID     uint   `json:"productId"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	Quantity      int    `json:"quantity"`
	SizeID        *uint  `json:"sizeId"`
	Size          string `json:"size,omitempty"`
	TemperatureID *uint  `json:"temperatureId"`
	Temperature   string `json:"temperature,omitempty"`
	UnitPrice     int64  `json:"unitPrice"`
	LineTotal     int64  `json:"subtotal"`
	IsFlashSale   bool   `json:"isFlashSale"`
	Stock         int    `json:"stock"`
}

type PromoPreview struct {
	Code               string `json:"code"`
	Title              string `json:"title"`
	DiscountPercentage int    `json:"discountPercentage"`
	Discount           int64  `json:"discount"`
	Total              int64  `json:"total"`
}

type CartView struct {
	Items      []CartLineView `json:"items"`
	ItemCount  int            `json:"itemCount"`
	Subtotal   int64          `json:"subtotal"`
	Promo      *PromoPreview  `json:"promo,omitempty"`
	PromoError string         `json:"promoError,omitempty"`
}

type CartService struct {
	Store *repository.Store
	Now   func() time.Time
}

func NewCartService(store *repository.Store) *CartService {
	return &CartService{Store: store, Now: time.Now}
}

// View lists the user's lines whose product is still on sale. A promo code,
// when given and currently valid, adds a discount preview.
func (s *CartService) View(userID uint, promoCode string) (*CartView, error) {
	lines, err := s.Store.Carts.FindLinesByUser(userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartLineView, 0, len(lines))}
	for _, line := range lines {
		if line.Product.ID == 0 || !line.Product.IsActive {
			continue
		}
		unit := LinePrice(line.Product, line.Size, line.Temperature)
		item := CartLineView{
			ID:            line.ID,
			ProductID:     line.ProductID,
			Name:          line.Product.Name,
			Image:         line.Product.Image,
			Quantity:      line.Quantity,
			SizeID:        line.SizeID,
			TemperatureID: line.TemperatureID,
			UnitPrice:     unit,
			LineTotal:     unit * int64(line.Quantity),
			IsFlashSale:   line.Product.IsFlashSale,
			Stock:         line.Product.Stock,
		}
		if line.Size != nil {
			item.Size = line.Size.Name
		}
		if line.Temperature != nil {
			item.Temperature = line.Temperature.Name
		}
		view.Items = append(view.Items, item)
		view.Subtotal += item.LineTotal
		view.ItemCount += line.Quantity
	}

	if code := strings.TrimSpace(promoCode); code != "" {
		promo, err := s.Store.Promos.FindActiveByCode(code)
		if err != nil {
			return nil, err
		}
		if promo == nil || !PromoRunning(promo, s.Now()) {
			view.PromoError = ErrPromoNotFound.Error()
		} else {
			discount, total := ApplyDiscount(view.Subtotal, promo.DiscountPercentage)
			view.Promo = &PromoPreview{
				Code:               promo.Code,
				Title:              promo.Title,
				DiscountPercentage: promo.DiscountPercentage,
				Discount:           discount,
				Total:              total,
			}
		}
	}
	return view, nil
}

// PromoRunning reports whether now falls inside the promo's date range,
// both ends inclusive.
func PromoRunning(promo *models.Promo, now time.Time) bool {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Time(promo.StartDate)
	end := time.Time(promo.EndDate)
	if !start.IsZero() && day.Before(dateOnly(start)) {
		return false
	}
	if !end.IsZero() && day.After(dateOnly(end)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Add puts a product into the cart, merging with an identical line.
// It reports whether a new line was created.
func (s *CartService) Add(ctx context.Context, userID uint, input AddToCartInput) (*models.CartItem, bool, error) {
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 1 {
		return nil, false, ErrInvalidQuantity
	}

	var saved *models.CartItem
	created := false
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		product, err := tx.Catalog.FindProduct(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return ErrProductUnavailable
		}
		if err := checkOptions(tx, input.SizeID, input.TemperatureID); err != nil {
			return err
		}

		existing, err := tx.Carts.FindMatchingLine(userID, input.ProductID, input.SizeID, input.TemperatureID)
		if err != nil {
			return err
		}

		quantity := input.Quantity
		if existing != nil {
			quantity += existing.Quantity
		}
		if quantity > product.Stock {
			return &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   quantity,
				Available:   product.Stock,
			}
		}

		lineID := uint(0)
		if existing != nil {
			if err := tx.Carts.UpdateQuantity(existing.ID, quantity); err != nil {
				return err
			}
			lineID = existing.ID
		} else {
			line := models.CartItem{
				UserID:        userID,
				ProductID:     input.ProductID,
				Quantity:      quantity,
				SizeID:        input.SizeID,
				TemperatureID: input.TemperatureID,
			}
			if err := tx.Carts.CreateLine(&line); err != nil {
				return err
			}
			lineID = line.ID
			created = true
		}

		saved, err = tx.Carts.FindLine(userID, lineID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return saved, created, nil
}

func checkOptions(tx *repository.Store, sizeID, temperatureID *uint) error {
	if sizeID != nil {
		size, err := tx.Catalog.FindSize(*sizeID)
		if err != nil {
			return err
		}
		if size == nil {
			return ErrSizeNotFound
		}
	}
	if temperatureID != nil {
		temperature, err := tx.Catalog.FindTemperature(*temperatureID)
		if err != nil {
			return err
		}
		if temperature == nil {
			return ErrTemperatureNotFound
		}
	}
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var saved *models.CartItem
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		line, err := tx.Carts.FindLine(userID, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return ErrCartLineNotFound
		}
		if line.Product.ID == 0 || !line.Product.IsActive {
			return ErrProductUnavailable
		}
		if quantity > line.Product.Stock {
			return &InsufficientStockError{
				ProductID:   line.ProductID,
				ProductName: line.Product.Name,
				Requested:   quantity,
				Available:   line.Product.Stock,
			}
		}
		if err := tx.Carts.UpdateQuantity(line.ID, quantity); err != nil {
			return err
		}
		saved, err = tx.Carts.FindLine(userID, lineID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *CartService) Remove(userID, lineID uint) error {
	deleted, err := s.Store.Carts.DeleteLine(userID, lineID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCartLineNotFound
	}
	return nil
}

func (s *CartService) Clear(userID uint) error {
	return s.Store.Carts.DeleteLinesByUser(userID)
}
