package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shahil8848/Quickcart/internal/dto"
	"github.com/shahil8848/Quickcart/internal/middleware"
	"github.com/shahil8848/Quickcart/internal/service"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	cartItems, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"cartItems": cartItems,
	})
}

// Update replaces the server-held cart with the client's full copy.
func (h *CartHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.cartService.UpdateCart(ctx, userID, req.CartData); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"success": true,
	})
}
