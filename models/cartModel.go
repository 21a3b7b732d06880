package models

import "time"

// CartItem is one line of a user's pending cart. Lines for the same product
// with the same size and temperature are merged.
type CartItem struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	UserID        uint                `json:"userId" gorm:"index;not null"`
	ProductID     uint                `json:"productId" gorm:"not null"`
	Product       Product             `json:"product"`
	Quantity      int                 `json:"quantity" gorm:"not null;check:chk_cart_items_quantity,quantity >= 1"`
	SizeID        *uint               `json:"sizeId"`
	Size          *ProductSize        `json:"size,omitempty"`
	TemperatureID *uint               `json:"temperatureId"`
	Temperature   *ProductTemperature `json:"temperature,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}
