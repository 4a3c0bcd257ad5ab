package handlers

import (
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type RelationshipHandler struct {
	RelationshipRepo repositories.RelationshipRepository
	UserRepo         repositories.UserRepository
}

func NewRelationshipHandler(relRepo repositories.RelationshipRepository, userRepo repositories.UserRepository) *RelationshipHandler {
	return &RelationshipHandler{RelationshipRepo: relRepo, UserRepo: userRepo}
}

func (h *RelationshipHandler) targetID(c echo.Context, userID uint) (uint, *echo.HTTPError) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if uint(id) == userID {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "cannot target yourself")
	}
	if _, err := h.UserRepo.GetUserByID(uint(id)); err != nil {
		return 0, httpError(err)
	}
	return uint(id), nil
}

func (h *RelationshipHandler) Block(c echo.Context) error {
	userID := getUserIDFromContext(c)
	target, herr := h.targetID(c, userID)
	if herr != nil {
		return herr
	}
	if err := h.RelationshipRepo.Block(userID, target); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"blocked": true})
}

func (h *RelationshipHandler) Unblock(c echo.Context) error {
	userID := getUserIDFromContext(c)
	target, herr := h.targetID(c, userID)
	if herr != nil {
		return herr
	}
	if err := h.RelationshipRepo.Unblock(userID, target); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"blocked": false})
}

func (h *RelationshipHandler) Mute(c echo.Context) error {
	userID := getUserIDFromContext(c)
	target, herr := h.targetID(c, userID)
	if herr != nil {
		return herr
	}
	if err := h.RelationshipRepo.Mute(userID, target); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"muted": true})
}

func (h *RelationshipHandler) Unmute(c echo.Context) error {
	userID := getUserIDFromContext(c)
	target, herr := h.targetID(c, userID)
	if herr != nil {
		return herr
	}
	if err := h.RelationshipRepo.Unmute(userID, target); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"muted": false})
}

func (h *RelationshipHandler) RegisterRelationshipRoutes(g *echo.Group) {
	g.POST("/users/:id/block", h.Block)
	g.DELETE("/users/:id/block", h.Unblock)
	g.POST("/users/:id/mute", h.Mute)
	g.DELETE("/users/:id/mute", h.Unmute)
}
