package jwtmiddleware

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const ContextKey = "user"

// JWTMiddleware authenticates requests from the accessToken cookie.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	cfg := echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		ContextKey:    ContextKey,
		TokenLookup:   "cookie:accessToken",
		KeyFunc: func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		},
	})
	return cfg
}

// UserID returns the authenticated user's id from the parsed token.
func UserID(c echo.Context) (string, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
	}
	return sub, nil
}

func Role(c echo.Context) (string, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	return role, nil
}

// AdminOnly rejects any request whose token does not carry the admin role.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, err := Role(c)
		if err != nil {
			return err
		}
		if role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func tokenClaims(c echo.Context) (jwt.MapClaims, error) {
	token, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}
