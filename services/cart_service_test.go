package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
	"github.com/Kariqs/kopi-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCartAddMergesIdenticalLines(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCartService(repository.NewStore(db))
	user := testutil.CreateUser(t, db, "c@example.com", "C", "Addr")
	p := testutil.CreateProduct(t, db, "Latte", 30000, 5)
	ctx := context.Background()

	line, created, err := svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID, Quantity: 2, SizeID: testutil.UintPtr(2)})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, line.Quantity)
	require.NotNil(t, line.Size)
	assert.Equal(t, "Medium", line.Size.Name)

	line, created, err = svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID, Quantity: 1, SizeID: testutil.UintPtr(2)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, line.Quantity)

	_, created, err = svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(2), testutil.CountRows(t, db, &models.CartItem{}))
}

func TestCartAddChecksStockAgainstMergedQuantity(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCartService(repository.NewStore(db))
	user := testutil.CreateUser(t, db, "c@example.com", "C", "Addr")
	p := testutil.CreateProduct(t, db, "Latte", 30000, 3)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	_, _, err = svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID, Quantity: 2})
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 4, stockErr.Requested)
}

func TestCartAddRejectsInvalidInput(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCartService(repository.NewStore(db))
	user := testutil.CreateUser(t, db, "c@example.com", "C", "Addr")
	p := testutil.CreateProduct(t, db, "Latte", 30000, 3)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, user.ID, AddToCartInput{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductUnavailable)

	_, _, err = svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID, Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, _, err = svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID, Quantity: 1, SizeID: testutil.UintPtr(42)})
	assert.ErrorIs(t, err, ErrSizeNotFound)

	_, _, err = svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID, Quantity: 1, TemperatureID: testutil.UintPtr(42)})
	assert.ErrorIs(t, err, ErrTemperatureNotFound)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).Update("is_active", false).Error)
	_, _, err = svc.Add(ctx, user.ID, AddToCartInput{ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartUpdateAndRemove(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCartService(repository.NewStore(db))
	user := testutil.CreateUser(t, db, "c@example.com", "C", "Addr")
	other := testutil.CreateUser(t, db, "o@example.com", "O", "Addr")
	p := testutil.CreateProduct(t, db, "Latte", 30000, 4)
	line := testutil.AddCartLine(t, db, user.ID, p.ID, 1, nil, nil)
	ctx := context.Background()

	updated, err := svc.UpdateQuantity(ctx, user.ID, line.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = svc.UpdateQuantity(ctx, user.ID, line.ID, 5)
	var stockErr *InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))

	_, err = svc.UpdateQuantity(ctx, user.ID, line.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateQuantity(ctx, other.ID, line.ID, 1)
	assert.ErrorIs(t, err, ErrCartLineNotFound)

	assert.ErrorIs(t, svc.Remove(other.ID, line.ID), ErrCartLineNotFound)
	require.NoError(t, svc.Remove(user.ID, line.ID))
	assert.ErrorIs(t, svc.Remove(user.ID, line.ID), ErrCartLineNotFound)
}

func TestCartViewWithPromo(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	svc := NewCartService(store)
	svc.Now = func() time.Time { return time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC) }

	user := testutil.CreateUser(t, db, "c@example.com", "C", "Addr")
	latte := testutil.CreateProduct(t, db, "Latte", 30000, 5)
	gone := testutil.CreateProduct(t, db, "Gone", 10000, 5)
	testutil.AddCartLine(t, db, user.ID, latte.ID, 2, nil, testutil.UintPtr(2))
	testutil.AddCartLine(t, db, user.ID, gone.ID, 1, nil, nil)
	require.NoError(t, db.Delete(&models.Product{}, gone.ID).Error)

	require.NoError(t, store.Promos.Create(&models.Promo{
		Code:               "OCT10",
		Title:              "October",
		DiscountPercentage: 10,
		StartDate:          datatypes.Date(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:            datatypes.Date(time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)),
		IsActive:           true,
	}))

	view, err := svc.View(user.ID, "oct10")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(32000), view.Items[0].UnitPrice)
	assert.Equal(t, "Iced", view.Items[0].Temperature)
	assert.Equal(t, int64(64000), view.Subtotal)
	require.NotNil(t, view.Promo)
	assert.Equal(t, int64(6400), view.Promo.Discount)
	assert.Equal(t, int64(57600), view.Promo.Total)

	view, err = svc.View(user.ID, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, view.Promo)
	assert.NotEmpty(t, view.PromoError)

	require.NoError(t, svc.Clear(user.ID))
	view, err = svc.View(user.ID, "")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}
