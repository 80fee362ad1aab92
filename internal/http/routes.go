package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "sitebid.com/sitebid/internal/http/middlewares"
)

func Register(e *echo.Echo, jobs *JobHandler, progress *ProgressHandler, notifications *NotificationHandler, rateLimitPerMinute int) {
	e.Validator = NewValidator()
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))
	e.Use(middleware.Identity())

	e.POST("/jobs", jobs.CreateJob)
	e.GET("/jobs", jobs.ListJobs)
	e.GET("/jobs/:id", jobs.GetJob)
	e.POST("/jobs/:id/publish", jobs.PublishJob)
	e.POST("/jobs/:id/start", jobs.StartJob)
	e.POST("/jobs/:id/complete", jobs.CompleteJob)
	e.POST("/jobs/:id/cancel", jobs.CancelJob)

	e.POST("/jobs/:id/bids", jobs.SubmitBid)
	e.PUT("/jobs/:id/bids/:bidId", jobs.EditBid)
	e.POST("/jobs/:id/bids/:bidId/withdraw", jobs.WithdrawBid)
	e.POST("/jobs/:id/bids/:bidId/reject", jobs.RejectBid)
	e.POST("/jobs/:id/bids/:bidId/accept", jobs.AcceptBid)

	e.POST("/jobs/:id/updates", progress.CreateUpdate)
	e.GET("/jobs/:id/updates", progress.ListUpdates)
	e.POST("/updates", progress.CreateUpdate)
	e.PUT("/updates/:id", progress.EditUpdate)
	e.DELETE("/updates/:id", progress.DeleteUpdate)
	e.POST("/updates/:id/acknowledge", progress.AcknowledgeUpdate)
	e.POST("/updates/:id/comments", progress.AddComment)
	e.POST("/updates/:id/issues/:index/resolve", progress.ResolveIssue)

	e.GET("/notifications", notifications.List)
	e.POST("/notifications/:id/read", notifications.MarkRead)
}
