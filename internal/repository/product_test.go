package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shahil8848/Quickcart/internal/client"
	"github.com/shahil8848/Quickcart/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.AutoMigrate(db))
	return db
}

func TestDecrementStock_Conditional(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Product{
		ID:    "p1",
		Name:  "Keyboard",
		Price: 100,
		Stock: 3,
	}).Error)

	require.NoError(t, repo.DecrementStock(ctx, db, "p1", 2))

	product, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.Stock)

	// Decrementing past zero is refused and leaves stock unchanged.
	err = repo.DecrementStock(ctx, db, "p1", 2)
	require.ErrorIs(t, err, ErrOutOfStock)

	product, err = repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.Stock)
}

func TestDecrementStock_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	err := repo.DecrementStock(context.Background(), db, "missing", 1)
	require.ErrorIs(t, err, ErrOutOfStock)
}

func TestMarkPaid_SecondCallReportsResolved(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Order{
		ID:          "order-1",
		UserID:      "user-1",
		Amount:      186,
		AddressID:   "addr-1",
		Status:      model.StatusPlaced,
		PaymentType: model.PaymentTypeStripe,
	}).Error)

	marked, err := repo.MarkPaid(ctx, db, "order-1")
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = repo.MarkPaid(ctx, db, "order-1")
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestOrderDelete_RemovesItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Order{
		ID:          "order-1",
		UserID:      "user-1",
		Amount:      100,
		AddressID:   "addr-1",
		Status:      model.StatusPlaced,
		PaymentType: model.PaymentTypeStripe,
	}).Error)
	require.NoError(t, db.Create(&model.OrderItem{
		OrderID:   "order-1",
		ProductID: "p1",
		Quantity:  1,
		UnitPrice: 100,
	}).Error)

	require.NoError(t, repo.Delete(ctx, db, "order-1"))

	var orders, items int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), items)
}
