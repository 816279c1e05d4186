package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shahil8848/Quickcart/internal/model"
)

// ErrOutOfStock is returned by DecrementStock when the conditional decrement
// would drive stock negative.
var ErrOutOfStock = fmt.Errorf("insufficient stock")

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

// DecrementStock applies a compare-and-decrement keyed by product ID so two
// concurrent checkouts cannot both drain the same units.
func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOutOfStock
	}

	return nil
}
