package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shahil8848/Quickcart/internal/middleware"
	"github.com/shahil8848/Quickcart/internal/service"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

// SellerList is the seller console variant of List. Role gating happens in
// middleware; sellers currently see the full catalog.
func (h *ProductHandler) SellerList(c echo.Context) error {
	return h.List(c)
}

// Add creates a product listing from a multipart form, pushing images to the
// object store first.
func (h *ProductHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()
	sellerID := middleware.UserID(c)

	price, err := strconv.ParseInt(c.FormValue("price"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Price must be a positive number")
	}

	var offerPrice int64
	if v := c.FormValue("offerPrice"); v != "" {
		offerPrice, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Offer price must be a positive number")
		}
	}

	stock, err := strconv.ParseInt(c.FormValue("stock"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Stock must be a non-negative whole number")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No files uploaded")
	}

	input := &service.AddProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Price:       price,
		OfferPrice:  offerPrice,
		Stock:       stock,
	}

	files := form.File["images"]
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "No files uploaded")
		}
		opened = append(opened, src)
		input.Images = append(input.Images, service.ImageUpload{
			Filename: fileHeader.Filename,
			Content:  src,
		})
	}

	product, err := h.catalogService.AddProduct(ctx, sellerID, input)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":    true,
		"message":    "Uploaded successfully",
		"newProduct": product,
	})
}
