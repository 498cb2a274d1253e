package server

import (
	"takeout/internal/config"
	"takeout/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録に必要なハンドラ一式。
type Handlers struct {
	Auth       *handler.AuthHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	Address    *handler.AddressHandler
	Shop       *handler.ShopHandler
	Category   *handler.CategoryHandler
	Dish       *handler.DishHandler
	Setmeal    *handler.SetmealHandler
	Employee   *handler.EmployeeHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	h.Auth.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.Address.RegisterRoutes(e, cfg)
	h.Shop.RegisterRoutes(e, cfg)
	h.Category.RegisterRoutes(e, cfg)
	h.Dish.RegisterRoutes(e, cfg)
	h.Setmeal.RegisterRoutes(e, cfg)
	h.Employee.RegisterRoutes(e, cfg)

	return e
}

func Start(cfg config.Config, h Handlers) error {
	e := New(cfg, h)
	return e.Start(":" + cfg.Port)
}
