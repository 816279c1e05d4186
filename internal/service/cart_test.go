package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahil8848/Quickcart/internal/repository"
)

func newCartService(t *testing.T) (CartService, func() int64) {
	t.Helper()

	db := newTestDB(t)
	svc := NewCartService(repository.NewCartRepository(db))

	count := func() int64 {
		return cartSize(t, db, "user-1")
	}
	return svc, count
}

func TestUpdateCart_ReplacesWholesale(t *testing.T) {
	svc, count := newCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateCart(ctx, "user-1", map[string]int64{"p1": 2, "p2": 1}))
	assert.Equal(t, int64(2), count())

	// A later full-map update wins outright; p2 disappears.
	require.NoError(t, svc.UpdateCart(ctx, "user-1", map[string]int64{"p1": 5}))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"p1": 5}, cart)
}

func TestUpdateCart_DropsNonPositiveQuantities(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateCart(ctx, "user-1", map[string]int64{
		"p1": 3,
		"p2": 0,
		"p3": -1,
	}))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"p1": 3}, cart)
}

func TestUpdateCart_IsIdempotent(t *testing.T) {
	svc, count := newCartService(t)
	ctx := context.Background()

	payload := map[string]int64{"p1": 2}
	require.NoError(t, svc.UpdateCart(ctx, "user-1", payload))
	require.NoError(t, svc.UpdateCart(ctx, "user-1", payload))
	assert.Equal(t, int64(1), count())
}

func TestGetCart_EmptyForNewUser(t *testing.T) {
	svc, _ := newCartService(t)

	cart, err := svc.GetCart(context.Background(), "fresh-user")
	require.NoError(t, err)
	assert.Empty(t, cart)
}
