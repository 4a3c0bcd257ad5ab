package handlers

import (
	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user's ID from the JWT
// claims placed on the context by the auth middleware, or 0 when absent.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// getRoleFromContext returns the authenticated user's role, or "" when absent.
func getRoleFromContext(c echo.Context) models.Role {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return ""
	}
	return claims.Role
}

// httpError maps a repository error to an echo.HTTPError using the app error
// taxonomy.
func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apperr.Status(err), err.Error())
}
