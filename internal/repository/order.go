package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shahil8848/Quickcart/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	GetOrderItems(ctx context.Context, tx *gorm.DB, orderID string) ([]*model.OrderItem, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, orderID string) error
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Omit("Items", "Address").Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Omit("Product").Create(&items).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, tx *gorm.DB, orderID string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

// MarkPaid transitions a provisional order to paid. Returns false when the
// order was already paid or no longer exists, which callers must treat as an
// already-resolved order and skip further reconciliation side effects.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID string) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND is_paid = ?", orderID, false).
		Updates(map[string]interface{}{
			"is_paid":    true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Delete removes a voided order and its line items entirely. No partial
// trace of the order is retained.
func (r *orderRepoImpl) Delete(ctx context.Context, tx *gorm.DB, orderID string) error {
	if err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}

	return tx.WithContext(ctx).
		Where("id = ?", orderID).
		Delete(&model.Order{}).Error
}

// ListByUser returns the caller's visible orders: every pay-on-delivery
// order plus hosted-checkout orders that have settled. Provisional orders
// stay hidden until the provider confirms payment.
func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Address").
		Where("user_id = ?", userID).
		Where("payment_type = ? OR (payment_type = ? AND is_paid = ?)",
			model.PaymentTypeCOD, model.PaymentTypeStripe, true).
		Order("date DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Address").
		Order("date DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
