package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shahil8848/Quickcart/internal/dto"
	"github.com/shahil8848/Quickcart/internal/model"
	"github.com/shahil8848/Quickcart/internal/repository"
)

type AddressService interface {
	AddAddress(ctx context.Context, userID string, payload *dto.AddressPayload) (*model.Address, error)
	ListAddresses(ctx context.Context, userID string) ([]*model.Address, error)
}

type addressServiceImpl struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressServiceImpl{
		addressRepo: addressRepo,
	}
}

func (s *addressServiceImpl) AddAddress(ctx context.Context, userID string, payload *dto.AddressPayload) (*model.Address, error) {
	if payload == nil {
		return nil, ErrMissingAddress
	}

	address := &model.Address{
		ID:           uuid.New().String(),
		UserID:       userID,
		FullName:     payload.FullName,
		PhoneNumber:  payload.PhoneNumber,
		PostalCode:   payload.PostalCode,
		Neighborhood: payload.Neighborhood,
		City:         payload.City,
		State:        payload.State,
		CreatedAt:    time.Now(),
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("store address in db: %w", err)
	}

	return address, nil
}

func (s *addressServiceImpl) ListAddresses(ctx context.Context, userID string) ([]*model.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}
