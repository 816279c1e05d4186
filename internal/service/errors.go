package service

import "fmt"

// Sentinel errors for checkout request validation.
var (
	ErrMissingAddress = fmt.Errorf("address is required")
	ErrEmptyItems     = fmt.Errorf("items are required")
)

// Sentinel errors for seller product input validation.
var (
	ErrInvalidStock      = fmt.Errorf("stock must be a non-negative whole number")
	ErrInvalidPrice      = fmt.Errorf("price must be a positive number")
	ErrInvalidOfferPrice = fmt.Errorf("offer price must be positive and not greater than price")
	ErrNoImages          = fmt.Errorf("at least one product image is required")
)

// InvalidQuantityError indicates a line item with a non-positive quantity.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity for product %s: quantity must be a positive whole number", e.ProductID)
}

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientStockError reports available vs requested units for the
// offending product.
type InsufficientStockError struct {
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, required %d",
		e.ProductName, e.Available, e.Requested)
}
