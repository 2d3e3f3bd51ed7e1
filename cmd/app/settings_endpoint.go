package main

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

func registerSettingsRoutes(g *echo.Group, admin *echo.Group, ss *services.SettingsService) {
	g.GET("/settings", func(c echo.Context) error {
		return c.JSON(http.StatusOK, ss.Settings(c.Request().Context()))
	})

	// PUT /admin/settings/logo takes {"logo": url} or a multipart "logo" file
	admin.PUT("/settings/logo", func(c echo.Context) error {
		logo, err := readLogo(c)
		if err != nil {
			return httpError(c, err)
		}
		if err := ss.SetLogo(c.Request().Context(), logo); err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"logo": ss.Logo(c.Request().Context())})
	})
}

func readLogo(c echo.Context) (string, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("logo")
		if err != nil {
			return "", &services.ValidationError{Field: "logo", Message: "logo file is required"}
		}
		f, err := fh.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		b, err := io.ReadAll(io.LimitReader(f, services.MaxImageBytes+1))
		if err != nil {
			return "", err
		}
		if len(b) > services.MaxImageBytes {
			return "", &services.ValidationError{Field: "logo", Message: "image exceeds 5MB"}
		}
		return services.EncodeImageDataURL(b)
	}

	var req struct {
		Logo string `json:"logo"`
	}
	if err := c.Bind(&req); err != nil {
		return "", &services.ValidationError{Field: "logo", Message: "invalid request"}
	}
	return req.Logo, nil
}
