package services

import (
	"context"
	"strings"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
	"gorm.io/datatypes"
)

type PromoInput struct {
	Code               string `json:"code"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	DiscountPercentage *int   `json:"discountPercentage"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	IsActive           *bool  `json:"isActive"`
}

type PromoService struct {
	Store *repository.Store
	Now   func() time.Time
}

func NewPromoService(store *repository.Store) *PromoService {
	return &PromoService{Store: store, Now: time.Now}
}

// Active lists active promos whose date range covers today.
func (s *PromoService) Active() ([]models.Promo, error) {
	promos, err := s.Store.Promos.ListActive()
	if err != nil {
		return nil, err
	}
	now := s.Now()
	running := make([]models.Promo, 0, len(promos))
	for i := range promos {
		if PromoRunning(&promos[i], now) {
			running = append(running, promos[i])
		}
	}
	return running, nil
}

func (s *PromoService) ByCode(code string) (*models.Promo, error) {
	promo, err := s.Store.Promos.FindActiveByCode(code)
	if err != nil {
		return nil, err
	}
	if promo == nil || !PromoRunning(promo, s.Now()) {
		return nil, ErrPromoNotFound
	}
	return promo, nil
}

func parsePromoDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return datatypes.Date{}, ErrInvalidPromoDates
	}
	return datatypes.Date(t), nil
}

func (s *PromoService) Create(ctx context.Context, input PromoInput) (*models.Promo, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" || strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidPromoInput
	}
	if input.DiscountPercentage == nil || *input.DiscountPercentage < 1 || *input.DiscountPercentage > 100 {
		return nil, ErrInvalidDiscount
	}
	start, err := parsePromoDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parsePromoDate(input.EndDate)
	if err != nil {
		return nil, err
	}
	if time.Time(start).After(time.Time(end)) {
		return nil, ErrInvalidPromoDates
	}

	promo := models.Promo{
		Code:               code,
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		DiscountPercentage: *input.DiscountPercentage,
		StartDate:          start,
		EndDate:            end,
		IsActive:           true,
	}
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}

	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		taken, err := tx.Promos.CodeTaken(code, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrPromoCodeTaken
		}
		return tx.Promos.Create(&promo)
	})
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (s *PromoService) Update(ctx context.Context, id uint, input PromoInput) (*models.Promo, error) {
	var updated *models.Promo
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Promos.FindByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrPromoNotFound
		}

		fields := map[string]any{}
		if code := strings.ToUpper(strings.TrimSpace(input.Code)); code != "" {
			taken, err := tx.Promos.CodeTaken(code, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrPromoCodeTaken
			}
			fields["code"] = code
		}
		if title := strings.TrimSpace(input.Title); title != "" {
			fields["title"] = title
		}
		if input.Description != "" {
			fields["description"] = input.Description
		}
		if input.DiscountPercentage != nil {
			if *input.DiscountPercentage < 1 || *input.DiscountPercentage > 100 {
				return ErrInvalidDiscount
			}
			fields["discount_percentage"] = *input.DiscountPercentage
		}
		start, end := existing.StartDate, existing.EndDate
		if input.StartDate != "" {
			if start, err = parsePromoDate(input.StartDate); err != nil {
				return err
			}
			fields["start_date"] = start
		}
		if input.EndDate != "" {
			if end, err = parsePromoDate(input.EndDate); err != nil {
				return err
			}
			fields["end_date"] = end
		}
		if time.Time(start).After(time.Time(end)) {
			return ErrInvalidPromoDates
		}
		if input.IsActive != nil {
			fields["is_active"] = *input.IsActive
		}

		if len(fields) > 0 {
			if err := tx.Promos.Update(id, fields); err != nil {
				return err
			}
		}
		updated, err = tx.Promos.FindByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PromoService) Delete(id uint) error {
	existing, err := s.Store.Promos.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPromoNotFound
	}
	return s.Store.Promos.Delete(id)
}
