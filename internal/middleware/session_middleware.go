package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionHeader carries the shopper session id in both directions.
const SessionHeader = "X-Session-ID"

const sessionKey = "session_id"

// NewSessionID returns a fresh session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Session makes sure every request has a session id. A missing or
// malformed id is replaced with a new one, which is echoed back in the
// response header.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(SessionHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = NewSessionID()
			}
			c.Set(sessionKey, id)
			c.Response().Header().Set(SessionHeader, id)
			return next(c)
		}
	}
}

// SessionID returns the id set by Session.
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionKey).(string)
	return id
}
