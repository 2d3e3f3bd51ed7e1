package main

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/MelaShop/Mela-Shop-bd/internal/middleware"
	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

type startDraftRequest struct {
	ProductID string `json:"productId"`
}

func registerInventoryRoutes(admin *echo.Group, is *services.InventoryService, rs *services.ReportService) {
	p := admin.Group("/products")

	p.GET("/export", func(c echo.Context) error {
		var buf bytes.Buffer
		if err := rs.ExportProducts(c.Request().Context(), &buf); err != nil {
			return httpError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
		return c.Blob(http.StatusOK, services.XLSXContentType, buf.Bytes())
	})

	p.DELETE("/:id", func(c echo.Context) error {
		if !confirmed(c) {
			return confirmationRequired(c)
		}
		if err := is.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
	})

	d := p.Group("/drafts")

	// POST starts a draft: empty body for a new product, productId to edit
	d.POST("", func(c echo.Context) error {
		req := new(startDraftRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		draft, err := is.StartDraft(c.Request().Context(), middleware.SessionID(c), req.ProductID)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusCreated, draft)
	})

	d.GET("", func(c echo.Context) error {
		draft, err := is.Draft(c.Request().Context(), middleware.SessionID(c))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, draft)
	})

	d.PUT("", func(c echo.Context) error {
		req := new(model.ProductDraft)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}
		draft, err := is.UpdateDraft(c.Request().Context(), middleware.SessionID(c), *req)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, draft)
	})

	d.DELETE("", func(c echo.Context) error {
		is.DiscardDraft(c.Request().Context(), middleware.SessionID(c))
		return c.JSON(http.StatusOK, echo.Map{"message": "discarded"})
	})

	// multipart upload, field "images", any number of files
	d.POST("/images", func(c echo.Context) error {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, "multipart form expected")
		}
		files := form.File["images"]
		if len(files) == 0 {
			return badRequest(c, "no images uploaded")
		}
		sources := make([]services.ImageSource, len(files))
		for i, fh := range files {
			sources[i] = services.ImageSource{
				Name: fh.Filename,
				Open: func() (io.ReadCloser, error) { return fh.Open() },
			}
		}
		draft, err := is.UploadImages(c.Request().Context(), middleware.SessionID(c), sources)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, draft)
	})

	d.DELETE("/images/:index", func(c echo.Context) error {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return badRequest(c, "invalid image index")
		}
		draft, err := is.RemoveDraftImage(c.Request().Context(), middleware.SessionID(c), index)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, draft)
	})

	d.POST("/save", func(c echo.Context) error {
		product, err := is.SaveDraft(c.Request().Context(), middleware.SessionID(c))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})
}
