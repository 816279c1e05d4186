package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shahil8848/Quickcart/internal/model"
)

type CartRepository interface {
	Get(ctx context.Context, userID string) ([]*model.CartItem, error)
	Replace(ctx context.Context, userID string, cartData map[string]int64) error
	Clear(ctx context.Context, tx *gorm.DB, userID string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Get(ctx context.Context, userID string) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

// Replace overwrites the user's server-side cart with the posted map. The
// client always sends the full cart, so this is an idempotent wholesale swap.
// Entries with non-positive quantities are dropped.
func (r *cartRepoImpl) Replace(ctx context.Context, userID string, cartData map[string]int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		items := make([]*model.CartItem, 0, len(cartData))
		for productID, quantity := range cartData {
			if quantity <= 0 {
				continue
			}
			items = append(items, &model.CartItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  quantity,
			})
		}
		if len(items) == 0 {
			return nil
		}

		return tx.Create(&items).Error
	})
}

func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, userID string) error {
	return tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
