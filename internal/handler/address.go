package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shahil8848/Quickcart/internal/dto"
	"github.com/shahil8848/Quickcart/internal/middleware"
	"github.com/shahil8848/Quickcart/internal/service"
)

type AddressHandler struct {
	addressService service.AddressService
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

func (h *AddressHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.AddAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	address, err := h.addressService.AddAddress(ctx, userID, req.Address)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":    true,
		"message":    "Address added successfully",
		"newAddress": address,
	})
}

func (h *AddressHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	addresses, err := h.addressService.ListAddresses(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"addresses": addresses,
	})
}
