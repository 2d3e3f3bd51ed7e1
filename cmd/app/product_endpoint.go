package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

func registerProductRoutes(g *echo.Group, cs *services.CatalogService, hero *services.HeroRotator) {
	g.GET("/categories", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"categories": cs.Categories()})
	})

	// GET /products?category=Mens&q=panjabi
	g.GET("/products", func(c echo.Context) error {
		products := cs.List(c.Request().Context(), c.QueryParam("category"), c.QueryParam("q"))
		return c.JSON(http.StatusOK, products)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		p, err := cs.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, p)
	})

	g.GET("/hero", func(c echo.Context) error {
		return c.JSON(http.StatusOK, hero.State())
	})
}
