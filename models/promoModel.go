package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Promo struct {
	gorm.Model
	Code               string         `json:"code" gorm:"uniqueIndex;size:50;not null"`
	Title              string         `json:"title" gorm:"not null"`
	Description        string         `json:"description"`
	DiscountPercentage int            `json:"discountPercentage"`
	StartDate          datatypes.Date `json:"startDate"`
	EndDate            datatypes.Date `json:"endDate"`
	IsActive           bool           `json:"isActive"`
}
