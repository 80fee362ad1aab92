package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sitebid.com/sitebid/internal/constants"
	dto "sitebid.com/sitebid/internal/data_models"
	errs "sitebid.com/sitebid/internal/errors"
	middleware "sitebid.com/sitebid/internal/http/middlewares"
	"sitebid.com/sitebid/internal/services"
)

type ProgressHandler struct {
	progress *services.ProgressService
}

func NewProgressHandler(progress *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

func (h *ProgressHandler) CreateUpdate(c echo.Context) error {
	var req dto.CreateUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	// Route param wins over any job id in the body.
	if id := c.Param("id"); id != "" {
		req.JobID = id
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update, err := h.progress.Create(c.Request().Context(), middleware.Actor(c).ID, services.CreateUpdateInput{
		JobID:           req.JobID,
		ProjectID:       req.ProjectID,
		StageID:         req.StageID,
		Type:            constants.UpdateType(req.Type),
		Notes:           req.Notes,
		WorkDone:        req.WorkDone,
		Materials:       req.Materials,
		Issues:          req.Issues,
		ProgressPercent: req.ProgressPercent,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, update)
}

func (h *ProgressHandler) ListUpdates(c echo.Context) error {
	limit, offset := pagination(c)
	updates, err := h.progress.ListForJob(
		c.Request().Context(),
		c.Param("id"), middleware.Actor(c), limit, offset,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(updates),
		"updates": updates,
	})
}

func (h *ProgressHandler) EditUpdate(c echo.Context) error {
	var req dto.EditUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update, err := h.progress.Edit(c.Request().Context(), c.Param("id"), middleware.Actor(c).ID, services.EditUpdateInput{
		StageID:         req.StageID,
		Type:            constants.UpdateType(req.Type),
		Notes:           req.Notes,
		WorkDone:        req.WorkDone,
		Materials:       req.Materials,
		ProgressPercent: req.ProgressPercent,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, update)
}

func (h *ProgressHandler) DeleteUpdate(c echo.Context) error {
	if err := h.progress.Delete(c.Request().Context(), c.Param("id"), middleware.Actor(c).ID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProgressHandler) AcknowledgeUpdate(c echo.Context) error {
	update, err := h.progress.Acknowledge(c.Request().Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, update)
}

func (h *ProgressHandler) AddComment(c echo.Context) error {
	var req dto.CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update, err := h.progress.AddComment(c.Request().Context(), c.Param("id"), middleware.Actor(c), req.Body)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, update)
}

func (h *ProgressHandler) ResolveIssue(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return httpError(errs.ErrIssueNotFound)
	}

	update, err := h.progress.ResolveIssue(c.Request().Context(), c.Param("id"), middleware.Actor(c), index)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, update)
}
