package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shahil8848/Quickcart/internal/model"
)

type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	FindOwned(ctx context.Context, addressID, userID string) (*model.Address, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Address, error)
}

type addressRepoImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepoImpl{
		db: db,
	}
}

func (r *addressRepoImpl) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// FindOwned resolves an address only when it belongs to the given user, so a
// caller can never order against someone else's address book.
func (r *addressRepoImpl) FindOwned(ctx context.Context, addressID, userID string) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error

	if err != nil {
		return nil, err
	}

	return &address, nil
}

func (r *addressRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Address, error) {
	var addresses []*model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&addresses).Error

	if err != nil {
		return nil, err
	}

	return addresses, nil
}
