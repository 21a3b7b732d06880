package services

import (
	"context"
	"testing"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
	"github.com/Kariqs/kopi-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// placeOrder checks out a fresh single-line cart and backdates the order.
func placeOrder(t *testing.T, db *gorm.DB, checkout *CheckoutService, userID, productID uint, at time.Time) *CheckoutResult {
	t.Helper()
	testutil.AddCartLine(t, db, userID, productID, 1, nil, nil)
	checkout.Now = func() time.Time { return at }
	result, err := checkout.Checkout(context.Background(), userID, CheckoutInput{})
	require.NoError(t, err)
	return result
}

func TestOrderHistoryFilters(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	checkout := NewCheckoutService(store, nil)
	orders := NewOrderService(store)

	user := testutil.CreateUser(t, db, "h@example.com", "H", "Addr")
	other := testutil.CreateUser(t, db, "x@example.com", "X", "Addr")
	p := testutil.CreateProduct(t, db, "Latte", 30000, 50)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).Update("image", "latte.png").Error)

	sept := placeOrder(t, db, checkout, user.ID, p.ID, time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC))
	octA := placeOrder(t, db, checkout, user.ID, p.ID, time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC))
	octB := placeOrder(t, db, checkout, user.ID, p.ID, time.Date(2025, 10, 31, 23, 0, 0, 0, time.UTC))
	placeOrder(t, db, checkout, other.ID, p.ID, time.Date(2025, 10, 5, 8, 0, 0, 0, time.UTC))

	_, err := orders.UpdateStatus(context.Background(), octA.OrderID, models.StatusFinishOrder)
	require.NoError(t, err)

	all, total, err := orders.History(user.ID, HistoryParams{Page: 1, Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, octB.OrderNumber, all[0].OrderNumber)
	assert.Equal(t, "latte.png", all[0].Image)
	assert.Equal(t, 1, all[0].ItemCount)

	october, total, err := orders.History(user.ID, HistoryParams{Month: "October 2025", Page: 1, Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, october, 2)

	ranged, _, err := orders.History(user.ID, HistoryParams{StartDate: "2025-09-01", EndDate: "2025-09-30", Page: 1, Limit: 4})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, sept.OrderNumber, ranged[0].OrderNumber)

	finished, _, err := orders.History(user.ID, HistoryParams{Status: models.StatusFinishOrder, Page: 1, Limit: 4})
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, octA.OrderNumber, finished[0].OrderNumber)

	paged, total, err := orders.History(user.ID, HistoryParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, paged, 1)

	_, _, err = orders.History(user.ID, HistoryParams{Month: "Octember", Page: 1, Limit: 4})
	assert.ErrorIs(t, err, ErrInvalidDateFilter)
}

func TestOrderDetailIsScopedToOwner(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	checkout := NewCheckoutService(store, nil)
	orders := NewOrderService(store)

	user := testutil.CreateUser(t, db, "h@example.com", "H", "Addr")
	other := testutil.CreateUser(t, db, "x@example.com", "X", "Addr")
	p := testutil.CreateProduct(t, db, "Latte", 30000, 5)
	placed := placeOrder(t, db, checkout, user.ID, p.ID, time.Now())

	order, err := orders.Detail(user.ID, placed.OrderID)
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 1)
	require.NotNil(t, order.OrderItems[0].Product)
	assert.Equal(t, "Latte", order.OrderItems[0].Product.Name)
	require.NotNil(t, order.DeliveryMethod)
	require.NotNil(t, order.Status)
	assert.Equal(t, models.StatusPending, order.Status.Name)

	_, err = orders.Detail(other.ID, placed.OrderID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderUpdateStatusValidation(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	orders := NewOrderService(store)
	ctx := context.Background()

	_, err := orders.UpdateStatus(ctx, 1, "lost_in_space")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = orders.UpdateStatus(ctx, 404, models.StatusCancelled)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
