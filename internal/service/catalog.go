package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/shahil8848/Quickcart/internal/client"
	"github.com/shahil8848/Quickcart/internal/model"
	"github.com/shahil8848/Quickcart/internal/repository"
)

// ImageUpload is one product image to push to the object store.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// AddProductInput carries a seller's new product listing. Prices are minor
// currency units; OfferPrice of 0 means no offer.
type AddProductInput struct {
	Name        string
	Description string
	Category    string
	Price       int64
	OfferPrice  int64
	Stock       int64
	Images      []ImageUpload
}

type CatalogService interface {
	List(ctx context.Context) ([]*model.Product, error)
	AddProduct(ctx context.Context, sellerID string, input *AddProductInput) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
	objectStore client.ObjectStoreClient
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	objectStore client.ObjectStoreClient,
) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
		objectStore: objectStore,
	}
}

func (s *catalogServiceImpl) List(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogServiceImpl) AddProduct(ctx context.Context, sellerID string, input *AddProductInput) (*model.Product, error) {
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.OfferPrice < 0 || input.OfferPrice > input.Price {
		return nil, ErrInvalidOfferPrice
	}
	if len(input.Images) == 0 {
		return nil, ErrNoImages
	}

	urls := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		url, err := s.objectStore.Upload(ctx, image.Filename, image.Content)
		if err != nil {
			return nil, fmt.Errorf("upload product image: %w", err)
		}
		urls = append(urls, url)
	}

	product := &model.Product{
		ID:          uuid.New().String(),
		SellerID:    sellerID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		OfferPrice:  input.OfferPrice,
		Stock:       input.Stock,
		Images:      urls,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("store product in db: %w", err)
	}

	return product, nil
}
