package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MelaShop/Mela-Shop-bd/internal/middleware"
	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

type addCartRequest struct {
	ID string `json:"id"`
	services.ProductSelection
}

type updateCartRequest struct {
	ID            string `json:"id"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
	SelectedImage string `json:"selectedImage"`
	Delta         int    `json:"delta"`
}

type cartResult struct {
	*model.CartResponse
	OpenCart bool `json:"openCart"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")

	// GET cart
	p.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, cs.Get(c.Request().Context(), middleware.SessionID(c)))
	})

	// ADD item
	p.POST("", func(c echo.Context) error {
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		if req.ID == "" {
			return badRequest(c, "id is required")
		}
		res, open, err := cs.AddProduct(c.Request().Context(), middleware.SessionID(c), req.ID, req.ProductSelection)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusCreated, cartResult{CartResponse: res, OpenCart: open})
	})

	// ADD from a product page
	p.POST("/products/:id", func(c echo.Context) error {
		sel := new(services.ProductSelection)
		if err := c.Bind(sel); err != nil {
			return badRequest(c, "invalid request")
		}
		res, open, err := cs.AddProduct(c.Request().Context(), middleware.SessionID(c), c.Param("id"), *sel)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusCreated, cartResult{CartResponse: res, OpenCart: open})
	})

	// UPDATE quantity
	p.PATCH("", func(c echo.Context) error {
		req := new(updateCartRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		key := model.LineKey{ID: req.ID, Size: req.SelectedSize, Color: req.SelectedColor, Image: req.SelectedImage}
		res, err := cs.UpdateQuantity(c.Request().Context(), middleware.SessionID(c), key, req.Delta)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		cs.Clear(c.Request().Context(), middleware.SessionID(c))
		return c.JSON(http.StatusOK, echo.Map{"message": "cleared"})
	})
}
