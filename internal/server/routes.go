package server

import (
	"refurbstore/internal/config"
	"refurbstore/internal/handler"
	"refurbstore/internal/middleware"
	"refurbstore/internal/session"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Cfg   config.Config
	Carts *session.Store

	Auth       *handler.AuthHandler
	Laptops    *handler.LaptopHandler
	Parts      *handler.SparePartHandler
	Images     *handler.ImageHandler
	Orders     *handler.AdminOrderHandler
	Storefront *handler.StoreHandler
}

func registerRoutes(e *echo.Echo, d Deps) {
	d.Auth.RegisterRoutes(e)

	// Admin API: JWT required, admin role only.
	admin := e.Group("/admin", middleware.AuthJWT(d.Cfg), middleware.AdminRoleGuard())
	d.Laptops.RegisterRoutes(admin)
	d.Parts.RegisterRoutes(admin)
	d.Images.RegisterRoutes(admin)
	d.Orders.RegisterRoutes(admin)

	// Guest storefront: anonymous, cart session via cookie.
	store := e.Group("/store", middleware.CartSession(d.Carts))
	d.Storefront.RegisterRoutes(store)
}
