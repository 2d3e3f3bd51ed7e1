package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/MelaShop/Mela-Shop-bd/internal/services"
)

var badRequestErrors = []error{
	services.ErrEmptyCart,
	services.ErrInvalidQuantity,
	services.ErrInvalidOption,
	services.ErrInvalidCategory,
	services.ErrInvalidDeliveryArea,
	services.ErrInvalidPayment,
	services.ErrInvalidStatus,
	services.ErrImageIndex,
	services.ErrNotImage,
}

// httpError maps a service error onto a JSON error response.
func httpError(c echo.Context, err error) error {
	var verr *services.ValidationError
	var terr *services.TransitionError

	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message, "field": verr.Field})
	case errors.As(err, &terr):
		return c.JSON(http.StatusConflict, echo.Map{"error": terr.Error(), "from": terr.From, "to": terr.To})
	case services.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPassphrase):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}

	c.Logger().Errorj(log.JSON{"op": "request", "path": c.Path(), "error": err.Error()})
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// confirmed reports whether a destructive admin action carries ?confirm=true.
func confirmed(c echo.Context) bool {
	return c.QueryParam("confirm") == "true"
}

func confirmationRequired(c echo.Context) error {
	return c.JSON(http.StatusConflict, echo.Map{
		"error": "confirmation required, repeat the request with ?confirm=true",
	})
}
