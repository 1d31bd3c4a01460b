package server

import (
	"shop/internal/config"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, hs Handlers) {
	hs.Auth.RegisterRoutes(e)
	hs.Items.RegisterRoutes(e)
	hs.AdminItem.RegisterRoutes(e, cfg)
	hs.Cart.RegisterRoutes(e, cfg)
	hs.Checkout.RegisterRoutes(e, cfg)
	hs.Reviews.RegisterRoutes(e, cfg)
}
