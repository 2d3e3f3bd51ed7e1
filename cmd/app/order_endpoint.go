package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MelaShop/Mela-Shop-bd/internal/middleware"
	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

func registerOrderRoutes(g *echo.Group, os *services.OrderService, ps *services.ProfileService) {
	g.POST("/checkout", func(c echo.Context) error {
		form := new(model.CheckoutForm)
		if err := c.Bind(form); err != nil {
			return badRequest(c, "invalid request")
		}
		placed, err := os.PlaceOrder(c.Request().Context(), middleware.SessionID(c), *form)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusCreated, placed)
	})

	g.GET("/checkout/prefill", func(c echo.Context) error {
		form, ok := ps.Prefill(c.Request().Context(), middleware.SessionID(c))
		if !ok {
			return c.JSON(http.StatusOK, echo.Map{"available": false})
		}
		return c.JSON(http.StatusOK, echo.Map{"available": true, "form": form})
	})

	// GET /orders?q=MELA-7K2
	g.GET("/orders", func(c echo.Context) error {
		orders := os.CustomerOrders(c.Request().Context(), middleware.SessionID(c), c.QueryParam("q"))
		return c.JSON(http.StatusOK, orders)
	})
}
