package service

import (
	"context"

	"github.com/shahil8848/Quickcart/internal/repository"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (map[string]int64, error)
	UpdateCart(ctx context.Context, userID string, cartData map[string]int64) error
}

type cartServiceImpl struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) CartService {
	return &cartServiceImpl{
		cartRepo: cartRepo,
	}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (map[string]int64, error) {
	items, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := make(map[string]int64, len(items))
	for _, item := range items {
		cart[item.ProductID] = item.Quantity
	}

	return cart, nil
}

// UpdateCart replaces the server-side cart with the client's full copy.
func (s *cartServiceImpl) UpdateCart(ctx context.Context, userID string, cartData map[string]int64) error {
	return s.cartRepo.Replace(ctx, userID, cartData)
}
