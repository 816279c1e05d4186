package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shahil8848/Quickcart/internal/dto"
	"github.com/shahil8848/Quickcart/internal/middleware"
	"github.com/shahil8848/Quickcart/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder places a pay-on-delivery order.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	orderID, err := h.orderService.PlaceOrder(ctx, userID, req.Address, req.Items)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, &dto.CreateOrderResponse{
		Success: true,
		Message: "Order placed successfully",
		OrderID: orderID,
	})
}

// CreateStripeOrder places a provisional hosted-checkout order and returns
// the provider redirect URL.
func (h *OrderHandler) CreateStripeOrder(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	url, err := h.orderService.PlaceStripeOrder(ctx, userID, req.Address, req.Items)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, &dto.StripeOrderResponse{
		Success: true,
		URL:     url,
	})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	orders, err := h.orderService.ListOrders(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (h *OrderHandler) SellerOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListAllOrders(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// StripeWebhook is the provider notification intake. The only failure
// surfaced to the provider is signature verification; everything after is
// acknowledged.
func (h *OrderHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.orderService.HandleWebhook(ctx, signature, body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"received": true,
	})
}
