package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/shahil8848/Quickcart/internal/config"
	"github.com/shahil8848/Quickcart/internal/handler"
	"github.com/shahil8848/Quickcart/internal/middleware"
	"github.com/shahil8848/Quickcart/internal/service"
)

type Server struct {
	echo           *echo.Echo
	jwtSecret      string
	orderHandler   *handler.OrderHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	addressHandler *handler.AddressHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	orderService service.OrderService,
	catalogService service.CatalogService,
	cartService service.CartService,
	addressService service.AddressService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error),
			)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		jwtSecret:      cfg.Auth.JWTSecret,
		orderHandler:   handler.NewOrderHandler(orderService),
		productHandler: handler.NewProductHandler(catalogService),
		cartHandler:    handler.NewCartHandler(cartService),
		addressHandler: handler.NewAddressHandler(addressService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/product/list", s.productHandler.List)

	// -------- payment provider webhook (signature-verified, no auth) --------
	api.POST("/stripe", s.orderHandler.StripeWebhook)

	// -------- authenticated storefront --------
	authed := api.Group("", middleware.AuthMiddleware(s.jwtSecret))
	authed.GET("/cart/get", s.cartHandler.Get)
	authed.POST("/cart/update", s.cartHandler.Update)
	authed.POST("/user/add-address", s.addressHandler.Add)
	authed.GET("/user/get-address", s.addressHandler.List)
	authed.POST("/order/create", s.orderHandler.CreateOrder)
	authed.POST("/order/stripe", s.orderHandler.CreateStripeOrder)
	authed.GET("/order/list", s.orderHandler.ListOrders)

	// -------- seller console --------
	seller := authed.Group("", middleware.SellerRequired())
	seller.GET("/product/seller-list", s.productHandler.SellerList)
	seller.POST("/product/add", s.productHandler.Add)
	seller.GET("/order/seller-orders", s.orderHandler.SellerOrders)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
