package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "user_id"
	ContextIsSeller = "is_seller"
)

// AuthMiddleware validates the bearer token issued by the identity provider
// and stores the caller identity and seller role claim on the request
// context. Requests without a valid token are rejected as unauthenticated.
func AuthMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "You must be logged in")
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "You must be logged in")
			}

			userID, err := claims.GetSubject()
			if err != nil || userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "You must be logged in")
			}

			isSeller, _ := claims["seller"].(bool)

			c.Set(ContextUserID, userID)
			c.Set(ContextIsSeller, isSeller)
			return next(c)
		}
	}
}

// SellerRequired gates seller console endpoints on the role claim.
func SellerRequired() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isSeller, _ := c.Get(ContextIsSeller).(bool)
			if !isSeller {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated caller identity set by AuthMiddleware.
func UserID(c echo.Context) string {
	userID, _ := c.Get(ContextUserID).(string)
	return userID
}
