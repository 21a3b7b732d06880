package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending      = "pending"
	StatusOnProgress   = "on_progress"
	StatusSendingGoods = "sending_goods"
	StatusFinishOrder  = "finish_order"
	StatusCancelled    = "cancelled"
)

type OrderStatus struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
}

type DeliveryMethod struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	BaseFee     int64  `json:"baseFee"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

type PaymentMethod struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// TaxRate is seeded for future use; checkout does not apply it yet.
type TaxRate struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	Name           string  `json:"name" gorm:"size:100;not null"`
	RatePercentage float64 `json:"ratePercentage"`
	IsActive       bool    `json:"isActive"`
}

type Order struct {
	gorm.Model
	OrderNumber      string          `json:"orderNumber" gorm:"uniqueIndex;size:64;not null"`
	UserID           uint            `json:"userId" gorm:"index;not null"`
	User             *User           `json:"user,omitempty"`
	StatusID         uint            `json:"statusId"`
	Status           *OrderStatus    `json:"status,omitempty"`
	ContactEmail     string          `json:"email"`
	ContactName      string          `json:"fullName"`
	DeliveryAddress  string          `json:"deliveryAddress"`
	DeliveryMethodID uint            `json:"deliveryMethodId"`
	DeliveryMethod   *DeliveryMethod `json:"deliveryMethod,omitempty"`
	PaymentMethodID  uint            `json:"paymentMethodId"`
	PaymentMethod    *PaymentMethod  `json:"paymentMethod,omitempty"`
	Subtotal         int64           `json:"subtotal"`
	DeliveryFee      int64           `json:"deliveryFee"`
	TaxAmount        int64           `json:"taxAmount"`
	Total            int64           `json:"total"`
	OrderDate        time.Time       `json:"orderDate" gorm:"index"`
	OrderItems       []OrderItem     `json:"orderItems,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is immutable once written. UnitPrice is the size and temperature
// inclusive price at checkout time.
type OrderItem struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	OrderID       uint                `json:"orderId" gorm:"index;not null"`
	ProductID     uint                `json:"productId" gorm:"not null"`
	Product       *Product            `json:"product,omitempty"`
	Quantity      int                 `json:"quantity" gorm:"not null"`
	SizeID        *uint               `json:"sizeId"`
	Size          *ProductSize        `json:"size,omitempty"`
	TemperatureID *uint               `json:"temperatureId"`
	Temperature   *ProductTemperature `json:"temperature,omitempty"`
	UnitPrice     int64               `json:"unitPrice"`
	IsFlashSale   bool                `json:"isFlashSale"`
	CreatedAt     time.Time           `json:"createdAt"`
}
