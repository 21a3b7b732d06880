package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one *gorm.DB handle. A Store built
// inside Transaction is bound to that transaction, so every read and write
// made through it commits or rolls back together.
type Store struct {
	DB      *gorm.DB
	Catalog *CatalogRepository
	Carts   *CartRepository
	Orders  *OrderRepository
	Users   *UserRepository
	Promos  *PromoRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:      db,
		Catalog: NewCatalogRepository(db),
		Carts:   NewCartRepository(db),
		Orders:  NewOrderRepository(db),
		Users:   NewUserRepository(db),
		Promos:  NewPromoRepository(db),
	}
}

// Transaction runs fn with a Store bound to a single database transaction.
// A returned error or a panic rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
