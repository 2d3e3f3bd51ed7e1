package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MelaShop/Mela-Shop-bd/internal/middleware"
	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

type loginRequest struct {
	Passphrase string `json:"passphrase"`
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, jwtAuth *middleware.JWTAuth) {
	g.POST("/admin/login", loginHandler(authSvc, jwtAuth))
}

func loginHandler(authSvc *services.AuthService, jwtAuth *middleware.JWTAuth) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		if err := authSvc.Login(c.Request().Context(), req.Passphrase); err != nil {
			return httpError(c, err)
		}

		token, exp, err := jwtAuth.GenerateToken(middleware.RoleAdmin)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not generate token",
			})
		}

		return c.JSON(http.StatusOK, model.AdminToken{Token: token, ExpiresAt: exp})
	}
}
