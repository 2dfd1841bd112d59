package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// ActorKey is the echo context key the authenticated actor is stored under.
const ActorKey = "actor"

// Auth validates the bearer JWT and injects the actor into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			actor := ports.Actor{}
			actor.ID, _ = claims["sub"].(string)
			actor.Email, _ = claims["email"].(string)
			actor.Role, _ = claims["role"].(string)
			actor.CompanyName, _ = claims["company"].(string)
			if actor.ID == "" || actor.Role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}
