package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "sitebid.com/sitebid/internal/http/middlewares"
	repository "sitebid.com/sitebid/internal/repositories"
)

type NotificationHandler struct {
	repo *repository.NotificationRepository
}

func NewNotificationHandler(repo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(c echo.Context) error {
	limit, _ := pagination(c)
	notifications, err := h.repo.ListForUser(
		c.Request().Context(),
		middleware.Actor(c).ID, time.Now().UTC(), limit,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(notifications),
		"notifications": notifications,
	})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	err := h.repo.MarkRead(c.Request().Context(), c.Param("id"), middleware.Actor(c).ID)
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
