package repository

import (
	"errors"

	"github.com/Kariqs/kopi-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// FindLinesByUser returns the user's cart lines with product, size and
// temperature preloaded, newest first.
func (r *CartRepository) FindLinesByUser(userID uint) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := r.DB.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Size").
		Preload("Temperature").
		Order("created_at desc, id desc").
		Find(&lines).Error
	return lines, err
}

func (r *CartRepository) FindLine(userID, lineID uint) (*models.CartItem, error) {
	var line models.CartItem
	err := r.DB.Where("id = ? AND user_id = ?", lineID, userID).
		Preload("Product").
		Preload("Size").
		Preload("Temperature").
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// FindMatchingLine finds the line for the same product/size/temperature
// combination, treating nil options as SQL NULL.
func (r *CartRepository) FindMatchingLine(userID, productID uint, sizeID, temperatureID *uint) (*models.CartItem, error) {
	query := r.DB.Where("user_id = ? AND product_id = ?", userID, productID)
	if sizeID == nil {
		query = query.Where("size_id IS NULL")
	} else {
		query = query.Where("size_id = ?", *sizeID)
	}
	if temperatureID == nil {
		query = query.Where("temperature_id IS NULL")
	} else {
		query = query.Where("temperature_id = ?", *temperatureID)
	}

	var line models.CartItem
	err := query.First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *CartRepository) CreateLine(line *models.CartItem) error {
	return r.DB.Omit(clause.Associations).Create(line).Error
}

func (r *CartRepository) UpdateQuantity(lineID uint, quantity int) error {
	return r.DB.Model(&models.CartItem{}).Where("id = ?", lineID).Update("quantity", quantity).Error
}

func (r *CartRepository) DeleteLine(userID, lineID uint) (bool, error) {
	res := r.DB.Where("id = ? AND user_id = ?", lineID, userID).Delete(&models.CartItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *CartRepository) DeleteLinesByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (r *CartRepository) CountLines(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
