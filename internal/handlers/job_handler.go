package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type JobHandler struct {
	JobRepo repositories.JobRepository
}

func NewJobHandler(jobRepo repositories.JobRepository) *JobHandler {
	return &JobHandler{JobRepo: jobRepo}
}

// CreateJob posts a job listing. Only firm accounts may post jobs.
func (h *JobHandler) CreateJob(c echo.Context) error {
	userID := getUserIDFromContext(c)
	role := getRoleFromContext(c)
	if role != models.RoleFirm && role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "only firms can post jobs")
	}

	var req models.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job := models.Job{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		Salary:      req.Salary,
		Deadline:    req.Deadline,
		IsActive:    true,
	}
	if err := h.JobRepo.CreateJob(&job); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetJob(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}
	job, err := h.JobRepo.GetJobByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListJobs(c echo.Context) error {
	page, limit := paginationParams(c)
	activeOnly := c.QueryParam("all") != "true"
	jobs, total, err := h.JobRepo.ListJobs(activeOnly, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"jobs": jobs,
		"meta": paginationMeta(page, limit, total),
	})
}

// CloseJob deactivates a listing so it stops taking applications.
func (h *JobHandler) CloseJob(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}
	if err := h.JobRepo.CloseJob(uint(id), userID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"is_active": false})
}

// Apply submits an application. Applications close when the job is inactive
// or the deadline has passed, and a user may apply to a job only once.
func (h *JobHandler) Apply(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	job, err := h.JobRepo.GetJobByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	if job.UserID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot apply to your own job")
	}
	if !job.IsActive {
		return echo.NewHTTPError(http.StatusBadRequest, "this job is no longer active")
	}
	if job.DeadlinePassed(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "deadline passed")
	}

	var req models.ApplyJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	application := models.JobApplication{
		JobID:       job.ID,
		UserID:      userID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	}
	if err := h.JobRepo.Apply(&application); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, application)
}

// GetApplication returns the authenticated user's application to a job.
func (h *JobHandler) GetApplication(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}
	application, err := h.JobRepo.GetApplication(uint(id), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, application)
}

func (h *JobHandler) RegisterJobRoutes(g *echo.Group) {
	g.POST("/jobs", h.CreateJob)
	g.GET("/jobs", h.ListJobs)
	g.GET("/jobs/:id", h.GetJob)
	g.PUT("/jobs/:id/close", h.CloseJob)
	g.POST("/jobs/:id/apply", h.Apply)
	g.GET("/jobs/:id/application", h.GetApplication)
}
