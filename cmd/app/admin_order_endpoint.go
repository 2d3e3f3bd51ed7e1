package main

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

type statusRequest struct {
	Status string `json:"status"`
}

func registerAdminOrderRoutes(admin *echo.Group, os *services.OrderService, rs *services.ReportService, feed *services.OrderFeed) {
	p := admin.Group("/orders")

	// GET /admin/orders?q=rahim
	p.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, os.AdminOrders(c.Request().Context(), c.QueryParam("q")))
	})

	p.GET("/export", func(c echo.Context) error {
		var buf bytes.Buffer
		if err := rs.ExportOrders(c.Request().Context(), &buf); err != nil {
			return httpError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
		return c.Blob(http.StatusOK, services.XLSXContentType, buf.Bytes())
	})

	// websocket feed of new orders
	p.GET("/feed", func(c echo.Context) error {
		return feed.Serve(c.Response(), c.Request())
	})

	p.GET("/:id", func(c echo.Context) error {
		o, err := os.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, o)
	})

	p.PATCH("/:id/status", func(c echo.Context) error {
		req := new(statusRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		status, err := services.ParseOrderStatus(req.Status)
		if err != nil {
			return httpError(c, err)
		}
		o, err := os.UpdateStatus(c.Request().Context(), c.Param("id"), status)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, o)
	})

	p.DELETE("/:id", func(c echo.Context) error {
		if !confirmed(c) {
			return confirmationRequired(c)
		}
		if err := os.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
	})
}
