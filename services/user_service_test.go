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
)

func TestUserServiceCreateAndUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(repository.NewStore(db))
	ctx := context.Background()

	user, err := svc.Create(ctx, UserInput{Email: "staff@example.com", Password: "password1", Role: models.RoleAdmin, FullName: "Staff"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	_, err = svc.Create(ctx, UserInput{Email: "staff@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Create(ctx, UserInput{Email: "x@example.com", Password: "password1", Role: "barista"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Create(ctx, UserInput{Email: "x@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidUserInput)

	updated, err := svc.Update(ctx, user.ID, UserInput{Address: "Jl. Baru", Phone: "0812"})
	require.NoError(t, err)
	require.NotNil(t, updated.Profile)
	assert.Equal(t, "Staff", updated.Profile.FullName)
	assert.Equal(t, "Jl. Baru", updated.Profile.Address)

	testutil.CreateUser(t, db, "taken@example.com", "T", "")
	_, err = svc.Update(ctx, user.ID, UserInput{Email: "taken@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Update(ctx, 999, UserInput{FullName: "Nobody"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceDelete(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	svc := NewUserService(store)
	ctx := context.Background()

	buyer := testutil.CreateUser(t, db, "buyer@example.com", "Buyer", "Addr")
	browser := testutil.CreateUser(t, db, "browser@example.com", "Browser", "Addr")
	p := testutil.CreateProduct(t, db, "Latte", 30000, 5)
	testutil.AddCartLine(t, db, browser.ID, p.ID, 1, nil, nil)
	placeOrder(t, db, NewCheckoutService(store, nil), buyer.ID, p.ID, time.Now())

	err := svc.Delete(ctx, buyer.ID)
	assert.ErrorIs(t, err, ErrUserHasOrders)
	assert.Equal(t, KindConflict, KindOf(err))

	require.NoError(t, svc.Delete(ctx, browser.ID))
	assert.Zero(t, testutil.CountRows(t, db, &models.CartItem{}))
	assert.ErrorIs(t, svc.Delete(ctx, browser.ID), ErrUserNotFound)
}
