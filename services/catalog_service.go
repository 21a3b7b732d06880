package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
)

var ErrInvalidProductInput = errors.New("name, categoryId and a non-negative price are required")

// ProductInput carries admin product fields. Nil fields are left unchanged
// on update.
type ProductInput struct {
	Name        *string `form:"name" json:"name"`
	Description *string `form:"description" json:"description"`
	CategoryID  *uint   `form:"categoryId" json:"categoryId"`
	Price       *int64  `form:"price" json:"price"`
	Stock       *int    `form:"stock" json:"stock"`
	IsFlashSale *bool   `form:"isFlashSale" json:"isFlashSale"`
	IsFavorite  *bool   `form:"isFavorite" json:"isFavorite"`
	IsBuy1Get1  *bool   `form:"isBuy1Get1" json:"isBuy1Get1"`
	IsActive    *bool   `form:"isActive" json:"isActive"`
	Image       string  `form:"-" json:"-"`
}

type CategoryInput struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

type CatalogService struct {
	Store *repository.Store
}

func NewCatalogService(store *repository.Store) *CatalogService {
	return &CatalogService{Store: store}
}

func (s *CatalogService) Product(id uint) (*models.Product, error) {
	product, err := s.Store.Catalog.FindProduct(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func checkCategory(tx *repository.Store, id uint) error {
	category, err := tx.Catalog.FindCategory(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" ||
		input.CategoryID == nil || input.Price == nil || *input.Price < 0 {
		return nil, ErrInvalidProductInput
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	product := models.Product{
		Name:       strings.TrimSpace(*input.Name),
		CategoryID: *input.CategoryID,
		Price:      *input.Price,
		Image:      input.Image,
		IsActive:   true,
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsFlashSale != nil {
		product.IsFlashSale = *input.IsFlashSale
	}
	if input.IsFavorite != nil {
		product.IsFavorite = *input.IsFavorite
	}
	if input.IsBuy1Get1 != nil {
		product.IsBuy1Get1 = *input.IsBuy1Get1
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	var created *models.Product
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		if err := checkCategory(tx, product.CategoryID); err != nil {
			return err
		}
		if err := tx.Catalog.CreateProduct(&product); err != nil {
			return err
		}
		if product.Image != "" {
			if err := tx.Catalog.AddProductImage(&models.ProductImage{Url: product.Image, ProductID: product.ID}); err != nil {
				return err
			}
		}
		var err error
		created, err = tx.Catalog.FindProduct(product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidProductInput
		}
		fields["name"] = name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrInvalidProductInput
		}
		fields["price"] = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidStock
		}
		fields["stock"] = *input.Stock
	}
	if input.CategoryID != nil {
		fields["category_id"] = *input.CategoryID
	}
	if input.IsFlashSale != nil {
		fields["is_flash_sale"] = *input.IsFlashSale
	}
	if input.IsFavorite != nil {
		fields["is_favorite"] = *input.IsFavorite
	}
	if input.IsBuy1Get1 != nil {
		fields["is_buy1_get1"] = *input.IsBuy1Get1
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.Image != "" {
		fields["image"] = input.Image
	}

	var updated *models.Product
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Catalog.FindProduct(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrProductNotFound
		}
		if input.CategoryID != nil {
			if err := checkCategory(tx, *input.CategoryID); err != nil {
				return err
			}
		}
		if len(fields) > 0 {
			if err := tx.Catalog.UpdateProduct(id, fields); err != nil {
				return err
			}
		}
		if input.Image != "" {
			if err := tx.Catalog.AddProductImage(&models.ProductImage{Url: input.Image, ProductID: id}); err != nil {
				return err
			}
		}
		updated, err = tx.Catalog.FindProduct(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CatalogService) DeleteProduct(id uint) error {
	deleted, err := s.Store.Catalog.DeleteProduct(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock sets a product's stock outside of checkout.
func (s *CatalogService) AdjustStock(id uint, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	updated, err := s.Store.Catalog.SetStock(id, stock)
	if err != nil {
		return nil, err
	}
	product, err := s.Store.Catalog.FindProduct(id)
	if err != nil {
		return nil, err
	}
	if product == nil || (!updated && product.Stock != stock) {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) Category(id uint) (*models.Category, error) {
	category, err := s.Store.Catalog.FindCategory(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := models.Category{Name: strings.TrimSpace(input.Name), IsActive: true}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		taken, err := tx.Catalog.CategoryNameTaken(category.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrCategoryNameTaken
		}
		return tx.Catalog.CreateCategory(&category)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	var updated *models.Category
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		if err := checkCategory(tx, id); err != nil {
			return err
		}
		name := strings.TrimSpace(input.Name)
		taken, err := tx.Catalog.CategoryNameTaken(name, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrCategoryNameTaken
		}
		fields := map[string]any{"name": name}
		if input.IsActive != nil {
			fields["is_active"] = *input.IsActive
		}
		if err := tx.Catalog.UpdateCategory(id, fields); err != nil {
			return err
		}
		updated, err = tx.Catalog.FindCategory(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.Store.Transaction(ctx, func(tx *repository.Store) error {
		if err := checkCategory(tx, id); err != nil {
			return err
		}
		count, err := tx.Catalog.CountProductsInCategory(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}
		return tx.Catalog.DeleteCategory(id)
	})
}
