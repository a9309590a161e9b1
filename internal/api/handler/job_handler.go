package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// ViewDispatcher is the interface the detail handlers use to enqueue view hits.
type ViewDispatcher interface {
	Enqueue(hit ports.ViewHit)
}

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
	views   ViewDispatcher
}

func NewJobHandler(service ports.JobService, views ViewDispatcher) *JobHandler {
	return &JobHandler{service: service, views: views}
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.Create(c.Request().Context(), toCreateJobInput(req, actor))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toJobResponse(job))
}

// Update handles PATCH /v1/jobs/:id.
//
// @Summary      Edit an owned job before approval
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id} [patch]
func (h *JobHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.Update(c.Request().Context(), toUpdateJobInput(req, actor, c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Delete handles DELETE /v1/jobs/:id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ports.DeleteJobInput{
		Actor: actor,
		JobID: c.Param("id"),
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/jobs/:slug. Public; a successful public view of an
// approved job enqueues a deduplicated view hit.
//
// @Summary      Get a job by slug
// @Tags         jobs
// @Produce      json
// @Param        slug  path      string  true  "Job slug"
// @Success      200   {object}  jobResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/jobs/{slug} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), ports.GetJobInput{
		Actor: optionalActor(c),
		Slug:  c.Param("slug"),
	})
	if err != nil {
		return err
	}

	if job.Status == domain.JobApproved {
		h.views.Enqueue(ports.ViewHit{
			ContentType: ports.ViewContentJob,
			ContentID:   job.ID,
			Fingerprint: viewerFingerprint(c),
			At:          time.Now(),
		})
	}

	return c.JSON(http.StatusOK, toJobResponse(job))
}

// ListPublic handles GET /v1/jobs — approved, unexpired jobs only.
//
// @Summary      List open jobs
// @Tags         jobs
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        job_type  query     string  false  "Job type filter"
// @Param        location  query     string  false  "Location filter"
// @Param        search    query     string  false  "Full-text search"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listJobsResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) ListPublic(c echo.Context) error {
	jobs, page, err := h.service.ListPublic(c.Request().Context(), ports.ListJobsInput{
		Category: c.QueryParam("category"),
		JobType:  c.QueryParam("job_type"),
		Location: c.QueryParam("location"),
		Search:   c.QueryParam("search"),
		Page:     bindPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListJobsResponse(jobs, page))
}

// ListOwn handles GET /v1/me/jobs — the caller's own postings, any status.
//
// @Summary      List own job postings
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Success      200     {object}  listJobsResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/me/jobs [get]
func (h *JobHandler) ListOwn(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	jobs, page, err := h.service.ListOwn(c.Request().Context(), ports.ListOwnJobsInput{
		Actor:  actor,
		Status: domain.JobStatus(c.QueryParam("status")),
		Page:   bindPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListJobsResponse(jobs, page))
}

// ModerationQueue handles GET /v1/admin/jobs — items awaiting review.
//
// @Summary      List jobs in the moderation queue
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter (defaults to pending)"
// @Success      200     {object}  listJobsResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/admin/jobs [get]
func (h *JobHandler) ModerationQueue(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	jobs, page, err := h.service.ModerationQueue(c.Request().Context(), ports.ModerationQueueInput{
		Actor:  actor,
		Status: domain.JobStatus(c.QueryParam("status")),
		Page:   bindPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListJobsResponse(jobs, page))
}

// Approve handles POST /v1/admin/jobs/:id/approve.
//
// @Summary      Approve a pending job
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/jobs/{id}/approve [post]
func (h *JobHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	job, err := h.service.Approve(c.Request().Context(), ports.ApproveJobInput{
		Actor: actor,
		JobID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Reject handles POST /v1/admin/jobs/:id/reject.
//
// @Summary      Reject a pending job
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Job id"
// @Param        body  body      rejectRequest  true  "Rejection reason"
// @Success      200   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/jobs/{id}/reject [post]
func (h *JobHandler) Reject(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.Reject(c.Request().Context(), ports.RejectJobInput{
		Actor:  actor,
		JobID:  c.Param("id"),
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}
