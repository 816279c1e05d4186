package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahil8848/Quickcart/internal/model"
	"github.com/shahil8848/Quickcart/internal/repository"
)

type fakeObjectStore struct {
	uploads []string
	err     error
}

func (f *fakeObjectStore) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	url := "https://cdn.example.com/product/" + filename
	f.uploads = append(f.uploads, url)
	return url, nil
}

func newCatalogFixture(t *testing.T) (CatalogService, *fakeObjectStore) {
	t.Helper()

	db := newTestDB(t)
	store := &fakeObjectStore{}
	return NewCatalogService(repository.NewProductRepository(db), store), store
}

func validProductInput() *AddProductInput {
	return &AddProductInput{
		Name:        "Keyboard",
		Description: "Clicky",
		Category:    "peripherals",
		Price:       100,
		OfferPrice:  90,
		Stock:       5,
		Images: []ImageUpload{
			{Filename: "front.png", Content: strings.NewReader("png")},
		},
	}
}

func TestAddProduct_UploadsImagesAndPersists(t *testing.T) {
	svc, store := newCatalogFixture(t)

	product, err := svc.AddProduct(context.Background(), "seller-1", validProductInput())
	require.NoError(t, err)

	assert.Equal(t, "seller-1", product.SellerID)
	assert.Equal(t, int64(90), product.EffectivePrice())
	require.Len(t, store.uploads, 1)
	assert.Equal(t, []string{"https://cdn.example.com/product/front.png"}, product.Images)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, product.ID, listed[0].ID)
}

func TestAddProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AddProductInput)
		wantErr error
	}{
		{"negative stock", func(in *AddProductInput) { in.Stock = -1 }, ErrInvalidStock},
		{"zero price", func(in *AddProductInput) { in.Price = 0 }, ErrInvalidPrice},
		{"offer above price", func(in *AddProductInput) { in.OfferPrice = 150 }, ErrInvalidOfferPrice},
		{"no images", func(in *AddProductInput) { in.Images = nil }, ErrNoImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newCatalogFixture(t)

			input := validProductInput()
			tt.mutate(input)

			_, err := svc.AddProduct(context.Background(), "seller-1", input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddProduct_UploadFailureAborts(t *testing.T) {
	svc, store := newCatalogFixture(t)
	store.err = fmt.Errorf("cdn down")

	_, err := svc.AddProduct(context.Background(), "seller-1", validProductInput())
	require.Error(t, err)

	listed, listErr := svc.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, listed)
}

func TestEffectivePrice(t *testing.T) {
	withOffer := &model.Product{Price: 100, OfferPrice: 90}
	assert.Equal(t, int64(90), withOffer.EffectivePrice())

	noOffer := &model.Product{Price: 100}
	assert.Equal(t, int64(100), noOffer.EffectivePrice())
}
