package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MelaShop/Mela-Shop-bd/internal/middleware"
	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

func registerCustomerRoutes(g *echo.Group, ps *services.ProfileService) {
	// POST /session starts a fresh shopper session
	g.POST("/session", func(c echo.Context) error {
		s := model.Session{ID: middleware.NewSessionID()}
		c.Response().Header().Set(middleware.SessionHeader, s.ID)
		return c.JSON(http.StatusCreated, s)
	})

	g.GET("/profile", func(c echo.Context) error {
		return c.JSON(http.StatusOK, ps.Get(c.Request().Context(), middleware.SessionID(c)))
	})

	g.PUT("/profile", func(c echo.Context) error {
		req := new(model.UserProfile)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		return c.JSON(http.StatusOK, ps.Save(c.Request().Context(), middleware.SessionID(c), *req))
	})
}
