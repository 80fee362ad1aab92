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

// JobHandler exposes the job and bid lifecycle.
type JobHandler struct {
	jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func httpError(err error) error {
	return echo.NewHTTPError(errs.StatusCode(err), err.Error())
}

func pagination(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	var req dto.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.jobs.CreateJob(c.Request().Context(), middleware.Actor(c), services.CreateJobInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Skills:      req.Skills,
		Location:    req.Location,
		WorkType:    req.WorkType,
		Timeline:    req.Timeline,
		Draft:       req.Draft,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) PublishJob(c echo.Context) error {
	job, err := h.jobs.PublishJob(c.Request().Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) GetJob(c echo.Context) error {
	job, err := h.jobs.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListJobs(c echo.Context) error {
	limit, offset := pagination(c)
	jobs, err := h.jobs.ListJobs(
		c.Request().Context(),
		c.QueryParam("project_id"),
		constants.JobStatus(c.QueryParam("status")),
		limit, offset,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(jobs),
		"jobs":  jobs,
	})
}

func (h *JobHandler) SubmitBid(c echo.Context) error {
	var req dto.SubmitBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, bid, err := h.jobs.SubmitBid(
		c.Request().Context(),
		c.Param("id"), middleware.Actor(c).ID,
		req.Amount, req.Proposal, req.EstimatedDays,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, bid)
}

func (h *JobHandler) EditBid(c echo.Context) error {
	var req dto.EditBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.jobs.EditBid(
		c.Request().Context(),
		c.Param("id"), c.Param("bidId"), middleware.Actor(c).ID,
		req.Amount, req.Proposal, req.EstimatedDays,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) WithdrawBid(c echo.Context) error {
	job, err := h.jobs.WithdrawBid(
		c.Request().Context(),
		c.Param("id"), c.Param("bidId"), middleware.Actor(c).ID,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) RejectBid(c echo.Context) error {
	var req dto.RespondBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.jobs.RejectBid(
		c.Request().Context(),
		c.Param("id"), c.Param("bidId"), middleware.Actor(c), req.Note,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) AcceptBid(c echo.Context) error {
	var req dto.RespondBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.jobs.AcceptBid(
		c.Request().Context(),
		c.Param("id"), c.Param("bidId"), middleware.Actor(c), req.Note,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) StartJob(c echo.Context) error {
	job, err := h.jobs.StartJob(c.Request().Context(), c.Param("id"), middleware.Actor(c).ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CompleteJob(c echo.Context) error {
	job, err := h.jobs.CompleteJob(c.Request().Context(), c.Param("id"), middleware.Actor(c).ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CancelJob(c echo.Context) error {
	var req dto.CancelJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.jobs.CancelJob(c.Request().Context(), c.Param("id"), middleware.Actor(c), req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}
