package handlers

import (
	"net/http"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type SavedItemHandler struct {
	SavedRepo repositories.SavedItemRepository
}

func NewSavedItemHandler(savedRepo repositories.SavedItemRepository) *SavedItemHandler {
	return &SavedItemHandler{SavedRepo: savedRepo}
}

// ToggleSave saves the target for later, or removes it if already saved.
func (h *SavedItemHandler) ToggleSave(c echo.Context) error {
	userID := getUserIDFromContext(c)
	ref, herr := contentRefFromPath(c)
	if herr != nil {
		return herr
	}
	state, err := h.SavedRepo.ToggleSave(userID, ref)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// SetFavorite flags or unflags an already-saved item as a favorite.
func (h *SavedItemHandler) SetFavorite(c echo.Context) error {
	userID := getUserIDFromContext(c)
	ref, herr := contentRefFromPath(c)
	if herr != nil {
		return herr
	}

	var req models.SetFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.SavedRepo.SetFavorite(userID, ref, req.IsFavorite); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"is_favorite": req.IsFavorite})
}

// ListSaved returns everything the user has saved, newest first.
func (h *SavedItemHandler) ListSaved(c echo.Context) error {
	userID := getUserIDFromContext(c)
	items, err := h.SavedRepo.ListByUser(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SavedItemHandler) RegisterSavedItemRoutes(g *echo.Group) {
	g.GET("/saved", h.ListSaved)
	g.POST("/saved/:targetType/:targetId", h.ToggleSave)
	g.PUT("/saved/:targetType/:targetId/favorite", h.SetFavorite)
}
