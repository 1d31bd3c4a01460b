package server

import (
	"shop/internal/config"
	"shop/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Items     *handler.ItemHandler
	AdminItem *handler.AdminItemHandler
	Cart      *handler.CartHandler
	Checkout  *handler.CheckoutHandler
	Reviews   *handler.ReviewHandler
}

func New(cfg config.Config, hs Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	registerRoutes(e, cfg, hs)
	return e
}

func Start(addr string, cfg config.Config, hs Handlers) error {
	e := New(cfg, hs)
	return e.Start(addr)
}
