package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/MelaShop/Mela-Shop-bd/internal/middleware"
	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

// app holds everything the routes need.
type app struct {
	Catalog   *services.CatalogService
	Carts     *services.CartService
	Orders    *services.OrderService
	Inventory *services.InventoryService
	Settings  *services.SettingsService
	Profiles  *services.ProfileService
	Auth      *services.AuthService
	Reports   *services.ReportService
	Feed      *services.OrderFeed
	Hero      *services.HeroRotator
	JWT       *middleware.JWTAuth
}

func newEcho(allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.SessionHeader},
		ExposeHeaders: []string{middleware.SessionHeader},
	}))
	return e
}

// registerRoutes wires every endpoint under /mela-shop.
func registerRoutes(e *echo.Echo, a *app) {
	api := e.Group("/mela-shop", middleware.Session())
	admin := api.Group("/admin", a.JWT.Middleware(), middleware.AdminOnly)

	registerCustomerRoutes(api, a.Profiles)
	registerProductRoutes(api, a.Catalog, a.Hero)
	registerCartRoutes(api, a.Carts)
	registerOrderRoutes(api, a.Orders, a.Profiles)
	registerSettingsRoutes(api, admin, a.Settings)
	registerAuthRoutes(api, a.Auth, a.JWT)
	registerAdminOrderRoutes(admin, a.Orders, a.Reports, a.Feed)
	registerInventoryRoutes(admin, a.Inventory, a.Reports)
}
