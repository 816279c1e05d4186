package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shahil8848/Quickcart/internal/service"
)

// mapServiceError translates typed checkout errors into client responses
// that name the offending item or field. Anything unrecognized falls through
// to echo's generic 500 handling.
func mapServiceError(err error) error {
	var invalidQty *service.InvalidQuantityError
	if errors.As(err, &invalidQty) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid quantity for product %s. Quantity must be a positive whole number.", invalidQty.ProductID))
	}

	var notFound *service.ProductNotFoundError
	if errors.As(err, &notFound) {
		return echo.NewHTTPError(http.StatusNotFound,
			fmt.Sprintf("Product not found: %s", notFound.ProductID))
	}

	var noStock *service.InsufficientStockError
	if errors.As(err, &noStock) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Insufficient stock for %s. Available: %d, Required: %d",
				noStock.ProductName, noStock.Available, noStock.Requested))
	}

	if errors.Is(err, service.ErrMissingAddress) || errors.Is(err, service.ErrEmptyItems) {
		return echo.NewHTTPError(http.StatusBadRequest, "Address and items are required")
	}

	if errors.Is(err, service.ErrInvalidStock) ||
		errors.Is(err, service.ErrInvalidPrice) ||
		errors.Is(err, service.ErrInvalidOfferPrice) ||
		errors.Is(err, service.ErrNoImages) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return err
}
