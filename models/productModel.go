package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name     string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	IsActive bool   `json:"isActive"`
}

// ProductSize is reference data; PriceAdjustment is added to the base price.
type ProductSize struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:50;not null"`
	PriceAdjustment int64  `json:"priceAdjustment"`
	IsActive        bool   `json:"isActive"`
}

// ProductTemperature is reference data; Price is added to the base price.
type ProductTemperature struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:50;not null"`
	Price    int64  `json:"price"`
	IsActive bool   `json:"isActive"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID uint   `json:"productId" binding:"required"`
}

type Product struct {
	gorm.Model
	Name        string         `json:"name" gorm:"size:191;not null"`
	Description string         `json:"description"`
	CategoryID  uint           `json:"categoryId"`
	Category    *Category      `json:"category,omitempty"`
	Price       int64          `json:"price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0;check:chk_products_stock,stock >= 0"`
	Image       string         `json:"image"`
	IsFlashSale bool           `json:"isFlashSale"`
	IsFavorite  bool           `json:"isFavorite"`
	IsBuy1Get1  bool           `json:"isBuy1Get1" gorm:"column:is_buy1_get1"`
	IsActive    bool           `json:"isActive"`
	Images      []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
