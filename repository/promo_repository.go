package repository

import (
	"errors"
	"strings"

	"github.com/Kariqs/kopi-api/models"
	"gorm.io/gorm"
)

type PromoRepository struct{ DB *gorm.DB }

func NewPromoRepository(db *gorm.DB) *PromoRepository { return &PromoRepository{DB: db} }

func (r *PromoRepository) ListActive() ([]models.Promo, error) {
	var promos []models.Promo
	err := r.DB.Where("is_active = ?", true).Order("created_at desc, id desc").Find(&promos).Error
	return promos, err
}

func (r *PromoRepository) ListAll() ([]models.Promo, error) {
	var promos []models.Promo
	err := r.DB.Order("id asc").Find(&promos).Error
	return promos, err
}

// FindActiveByCode matches codes case-insensitively.
func (r *PromoRepository) FindActiveByCode(code string) (*models.Promo, error) {
	var p models.Promo
	err := r.DB.Where("code = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(code)), true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepository) FindByID(id uint) (*models.Promo, error) {
	var p models.Promo
	err := r.DB.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepository) CodeTaken(code string, exceptID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Promo{}).
		Where("code = ? AND id <> ?", strings.ToUpper(code), exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *PromoRepository) Create(p *models.Promo) error {
	return r.DB.Create(p).Error
}

func (r *PromoRepository) Update(id uint, fields map[string]any) error {
	return r.DB.Model(&models.Promo{}).Where("id = ?", id).Updates(fields).Error
}

func (r *PromoRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&models.Promo{}, id).Error
}
