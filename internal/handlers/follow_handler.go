package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type FollowHandler struct {
	FollowRepo       repositories.FollowRepository
	UserRepo         repositories.UserRepository
	RelationshipRepo repositories.RelationshipRepository
	NotificationRepo repositories.NotificationRepository
}

func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, relRepo repositories.RelationshipRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		FollowRepo:       followRepo,
		UserRepo:         userRepo,
		RelationshipRepo: relRepo,
		NotificationRepo: notifRepo,
	}
}

// ToggleFollow follows the target user if no edge exists, otherwise removes
// the existing edge. The resulting state is returned either way.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	userID := getUserIDFromContext(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if uint(targetID) == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot follow yourself")
	}

	target, err := h.UserRepo.GetUserByID(uint(targetID))
	if err != nil {
		return httpError(err)
	}

	blocked, err := h.RelationshipRepo.IsBlocked(userID, target.ID)
	if err != nil {
		return httpError(err)
	}
	if blocked {
		return echo.NewHTTPError(http.StatusForbidden, "cannot follow this user")
	}

	state, err := h.FollowRepo.ToggleFollow(userID, target.ID)
	if err != nil {
		return httpError(err)
	}

	if state.Following && state.Status == models.FollowStatusPending {
		actor, err := h.UserRepo.GetUserByID(userID)
		if err == nil {
			_ = h.NotificationRepo.CreateNotification(&models.Notification{
				RecipientID: target.ID,
				ActorID:     userID,
				Type:        models.NotificationFollowRequest,
				Title:       "New follow request",
				Message:     fmt.Sprintf("%s wants to follow you", actor.Name),
				Link:        fmt.Sprintf("/users/%d", userID),
			})
		}
	}
	return c.JSON(http.StatusOK, state)
}

// Unfollow removes any follow edge toward the target user. Removing an
// absent edge succeeds; either way the caller ends up not following.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID := getUserIDFromContext(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := h.FollowRepo.Unfollow(userID, uint(targetID)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, &models.FollowState{Following: false})
}

// RespondToRequest accepts or rejects a pending follow request addressed to
// the authenticated user.
func (h *FollowHandler) RespondToRequest(c echo.Context) error {
	userID := getUserIDFromContext(c)
	followID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	var req models.RespondFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	follow, err := h.FollowRepo.Respond(uint(followID), userID, req.Status)
	if err != nil {
		return httpError(err)
	}

	if follow.Status == models.FollowStatusAccepted {
		recipient, err := h.UserRepo.GetUserByID(userID)
		if err == nil {
			_ = h.NotificationRepo.CreateNotification(&models.Notification{
				RecipientID: follow.FollowerID,
				ActorID:     userID,
				Type:        models.NotificationFollowAccepted,
				Title:       "Follow request accepted",
				Message:     fmt.Sprintf("%s accepted your follow request", recipient.Name),
				Link:        fmt.Sprintf("/users/%d", userID),
			})
		}
	}
	return c.JSON(http.StatusOK, follow)
}

// PendingRequests lists follow requests awaiting the authenticated user.
func (h *FollowHandler) PendingRequests(c echo.Context) error {
	userID := getUserIDFromContext(c)
	follows, err := h.FollowRepo.GetPendingRequests(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, follows)
}

// Followers lists accepted followers of a user.
func (h *FollowHandler) Followers(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	users, err := h.FollowRepo.GetFollowers(uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, compactUsers(users))
}

// Following lists users a user follows with accepted status.
func (h *FollowHandler) Following(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	users, err := h.FollowRepo.GetFollowing(uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, compactUsers(users))
}

func compactUsers(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToCompact())
	}
	return out
}

func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/followers", h.Followers)
	g.GET("/users/:id/following", h.Following)
	g.GET("/follow/requests", h.PendingRequests)
	g.PUT("/follow/requests/:id", h.RespondToRequest)
}
