package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sitebid.com/sitebid/internal/constants"
	model "sitebid.com/sitebid/internal/models"
)

const actorKey = "actor"

// Identity trusts the upstream identity provider's headers. Authentication
// happens at the gateway; this core only needs the resolved id and role.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get("X-User-ID")
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
			}

			role := c.Request().Header.Get("X-User-Role")
			if role == "" {
				role = constants.RoleCustomer
			}

			c.Set(actorKey, model.Actor{ID: userID, Role: role})
			return next(c)
		}
	}
}

// Actor returns the caller set by Identity.
func Actor(c echo.Context) model.Actor {
	actor, _ := c.Get(actorKey).(model.Actor)
	return actor
}
