package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type ResearchHandler struct {
	ResearchRepo     repositories.ResearchRepository
	UserRepo         repositories.UserRepository
	NotificationRepo repositories.NotificationRepository
}

func NewResearchHandler(researchRepo repositories.ResearchRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *ResearchHandler {
	return &ResearchHandler{ResearchRepo: researchRepo, UserRepo: userRepo, NotificationRepo: notifRepo}
}

func (h *ResearchHandler) CreateResearch(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateResearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	paper := models.ResearchPaper{
		UserID:   userID,
		Title:    req.Title,
		Abstract: req.Abstract,
		Field:    req.Field,
		FileURL:  req.FileURL,
	}
	if err := h.ResearchRepo.CreateResearch(&paper); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, paper)
}

func (h *ResearchHandler) GetResearch(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid research id")
	}
	paper, err := h.ResearchRepo.GetResearchByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paper)
}

// ListResearch lists papers, optionally filtered by field.
func (h *ResearchHandler) ListResearch(c echo.Context) error {
	page, limit := paginationParams(c)
	field := c.QueryParam("field")
	papers, total, err := h.ResearchRepo.ListResearch(field, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"research": papers,
		"meta":     paginationMeta(page, limit, total),
	})
}

// RequestAccess notifies a paper's author that the user wants the full text.
func (h *ResearchHandler) RequestAccess(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid research id")
	}
	paper, err := h.ResearchRepo.GetResearchByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	if paper.UserID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "you already own this paper")
	}

	actor, err := h.UserRepo.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}
	if err := h.NotificationRepo.CreateNotification(&models.Notification{
		RecipientID: paper.UserID,
		ActorID:     userID,
		Type:        models.NotificationResearchRequest,
		Title:       "Research access request",
		Message:     fmt.Sprintf("%s requested access to %q", actor.Name, paper.Title),
		Link:        fmt.Sprintf("/research/%d", paper.ID),
	}); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"requested": true})
}

func (h *ResearchHandler) RegisterResearchRoutes(g *echo.Group) {
	g.POST("/research", h.CreateResearch)
	g.GET("/research", h.ListResearch)
	g.GET("/research/:id", h.GetResearch)
	g.POST("/research/:id/request-access", h.RequestAccess)
}
