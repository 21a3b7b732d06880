package services

import (
	"errors"
	"fmt"

	"github.com/Kariqs/kopi-api/repository"
)

// ErrorKind classifies service errors for the HTTP layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindConfiguration
)

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrMissingContactInfo     = errors.New("email, full name and address are required")
	ErrDeliveryMethodNotFound = errors.New("delivery method not found")
	ErrPaymentMethodNotFound  = errors.New("payment method not found")
	ErrPendingStatusMissing   = errors.New("pending order status is not configured")

	ErrProductNotFound     = errors.New("product not found")
	ErrProductUnavailable  = errors.New("product not found or inactive")
	ErrSizeNotFound        = errors.New("size not found")
	ErrTemperatureNotFound = errors.New("temperature not found")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidStock        = errors.New("stock cannot be negative")
	ErrCartLineNotFound    = errors.New("item not found in cart")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameTaken   = errors.New("category name already exists")
	ErrCategoryInUse       = errors.New("category still has products")

	ErrPromoNotFound     = errors.New("promo not found or inactive")
	ErrPromoCodeTaken    = errors.New("promo code already exists")
	ErrInvalidDiscount   = errors.New("discount percentage must be between 1 and 100")
	ErrInvalidPromoDates = errors.New("startDate and endDate must be YYYY-MM-DD with startDate not after endDate")
	ErrInvalidPromoInput = errors.New("code and title are required")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidDateFilter = errors.New("dates must be YYYY-MM-DD and month like \"October 2025\"")

	ErrUserHasOrders    = errors.New("user has orders and cannot be deleted")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("invalid email or password")
	ErrInvalidRole      = errors.New("role must be admin or customer")
	ErrInvalidUserInput = errors.New("email and a password of at least 8 characters are required")
	ErrOTPNotFound      = errors.New("otp not found or expired")
	ErrOTPInvalid       = errors.New("invalid otp")
	ErrOTPTooManyTries  = errors.New("too many attempts, request a new otp")
)

// InsufficientStockError names the product whose stock cannot cover the
// requested quantity.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s, available: %d", e.ProductName, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == repository.ErrStockConflict
}

// KindOf maps err to the class the caller should report.
func KindOf(err error) ErrorKind {
	var stockErr *InsufficientStockError
	switch {
	case err == nil:
		return KindInternal
	case errors.As(err, &stockErr):
		return KindValidation
	case errors.Is(err, ErrPendingStatusMissing):
		return KindConfiguration
	case errors.Is(err, ErrInvalidLogin):
		return KindUnauthorized
	case errors.Is(err, ErrCartLineNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrPromoNotFound):
		return KindNotFound
	case errors.Is(err, ErrUserHasOrders),
		errors.Is(err, ErrCategoryInUse):
		return KindConflict
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrMissingContactInfo),
		errors.Is(err, ErrDeliveryMethodNotFound),
		errors.Is(err, ErrPaymentMethodNotFound),
		errors.Is(err, ErrProductUnavailable),
		errors.Is(err, ErrSizeNotFound),
		errors.Is(err, ErrTemperatureNotFound),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidStock),
		errors.Is(err, ErrCategoryNameTaken),
		errors.Is(err, ErrPromoCodeTaken),
		errors.Is(err, ErrInvalidDiscount),
		errors.Is(err, ErrInvalidPromoDates),
		errors.Is(err, ErrInvalidPromoInput),
		errors.Is(err, ErrInvalidProductInput),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidDateFilter),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrOTPNotFound),
		errors.Is(err, ErrOTPInvalid),
		errors.Is(err, ErrOTPTooManyTries),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidUserInput):
		return KindValidation
	default:
		return KindInternal
	}
}
