package handlers

import (
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type ProjectHandler struct {
	ProjectRepo repositories.ProjectRepository
}

func NewProjectHandler(projectRepo repositories.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{ProjectRepo: projectRepo}
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project := models.Project{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Year:        req.Year,
		ImageURL:    req.ImageURL,
	}
	if err := h.ProjectRepo.CreateProject(&project); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	project, err := h.ProjectRepo.GetProjectByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// ListProjects lists projects, optionally filtered by category.
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	page, limit := paginationParams(c)
	category := c.QueryParam("category")
	projects, total, err := h.ProjectRepo.ListProjects(category, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"projects": projects,
		"meta":     paginationMeta(page, limit, total),
	})
}

// DeleteProject removes a project. Only the owner may delete it.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}
	project, err := h.ProjectRepo.GetProjectByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	if project.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "you can only delete your own projects")
	}
	if err := h.ProjectRepo.DeleteProject(project.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

func (h *ProjectHandler) RegisterProjectRoutes(g *echo.Group) {
	g.POST("/projects", h.CreateProject)
	g.GET("/projects", h.ListProjects)
	g.GET("/projects/:id", h.GetProject)
	g.DELETE("/projects/:id", h.DeleteProject)
}
