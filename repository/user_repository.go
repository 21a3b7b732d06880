package repository

import (
	"errors"
	"strings"

	"github.com/Kariqs/kopi-api/models"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var u models.User
	err := r.DB.Preload("Profile").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.DB.Preload("Profile").Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) EmailTaken(email string, exceptID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.User{}).
		Where("email = ? AND id <> ?", strings.ToLower(strings.TrimSpace(email)), exceptID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the user and, when set, its profile.
func (r *UserRepository) Create(u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return r.DB.Create(u).Error
}

func (r *UserRepository) UpdateUser(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) UpdatePassword(id uint, hashed string) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).Update("password", hashed).Error
}

// UpsertProfile updates the profile row of userID, creating it if missing.
func (r *UserRepository) UpsertProfile(userID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	var profile models.UserProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{UserID: userID}
		if err := r.DB.Create(&profile).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return r.DB.Model(&profile).Updates(fields).Error
}

func (r *UserRepository) List(page, limit int) ([]models.User, int64, error) {
	var total int64
	if err := r.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := r.DB.Preload("Profile").
		Order("id asc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error
	return users, total, err
}

// Delete removes the user together with profile and cart lines.
func (r *UserRepository) Delete(id uint) error {
	if err := r.DB.Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if err := r.DB.Unscoped().Where("user_id = ?", id).Delete(&models.UserProfile{}).Error; err != nil {
		return err
	}
	return r.DB.Unscoped().Delete(&models.User{}, id).Error
}
