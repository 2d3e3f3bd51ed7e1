package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const RoleAdmin = "admin"

// Claims defines JWT payload structure
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth issues and checks admin tokens.
type JWTAuth struct {
	secret []byte
	ttl    time.Duration
	Now    func() time.Time
}

func NewJWTAuth(secret string, ttl time.Duration) *JWTAuth {
	if secret == "" {
		secret = "dev-secret-please-change"
	}
	return &JWTAuth{secret: []byte(secret), ttl: ttl, Now: time.Now}
}

// GenerateToken creates a signed token for role that expires after the configured ttl.
func (a *JWTAuth) GenerateToken(role string) (string, time.Time, error) {
	now := a.Now()
	exp := now.Add(a.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "mela-shop",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(a.secret)
	return s, exp, err
}

func (a *JWTAuth) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.Now))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// bearerToken reads the Authorization header. Browsers cannot set headers
// on websocket upgrades, so a token query parameter is accepted there.
func bearerToken(c echo.Context) (string, error) {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		if t := c.QueryParam("token"); t != "" && c.IsWebSocket() {
			return t, nil
		}
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(auth)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// Middleware validates the token and sets the claims on the context
func (a *JWTAuth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			claims, err := a.parse(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			c.Set("auth_claims", claims)
			return next(c)
		}
	}
}

// Helper to extract claims
func GetClaims(c echo.Context) *Claims {
	v := c.Get("auth_claims")
	if v == nil {
		return nil
	}
	if cl, ok := v.(*Claims); ok {
		return cl
	}
	return nil
}

// TryGetClaims parses the Authorization header if present.
// Returns nil when there is no token or it is invalid.
func (a *JWTAuth) TryGetClaims(c echo.Context) *Claims {
	tokenString, err := bearerToken(c)
	if err != nil {
		return nil
	}
	claims, err := a.parse(tokenString)
	if err != nil {
		return nil
	}
	return claims
}

// AdminOnly middleware requires role == admin
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || claims.Role != RoleAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
		}
		return next(c)
	}
}
