package models

import "gorm.io/gorm"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	gorm.Model
	Email    string       `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password string       `json:"-" gorm:"not null"`
	Role     string       `json:"role" gorm:"size:20;not null"`
	Profile  *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type UserProfile struct {
	gorm.Model
	UserID   uint   `json:"userId" gorm:"uniqueIndex"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PhotoURL string `json:"photoUrl"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
