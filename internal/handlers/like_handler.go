package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type LikeHandler struct {
	LikeRepo         repositories.LikeRepository
	UserRepo         repositories.UserRepository
	NotificationRepo repositories.NotificationRepository
	Resolver         *ContentResolver
}

func NewLikeHandler(likeRepo repositories.LikeRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, resolver *ContentResolver) *LikeHandler {
	return &LikeHandler{LikeRepo: likeRepo, UserRepo: userRepo, NotificationRepo: notifRepo, Resolver: resolver}
}

func contentRefFromPath(c echo.Context) (models.ContentRef, *echo.HTTPError) {
	kind, err := models.ParseContentKind(c.Param("targetType"))
	if err != nil {
		return models.ContentRef{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ref, err := models.NewContentRef(string(kind), c.Param("targetId"))
	if err != nil {
		return models.ContentRef{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ref, nil
}

// ToggleLike likes the target if the user has not liked it, otherwise removes
// the like. Returns the resulting state and the updated count.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID := getUserIDFromContext(c)
	ref, herr := contentRefFromPath(c)
	if herr != nil {
		return herr
	}

	state, err := h.LikeRepo.ToggleLike(userID, ref)
	if err != nil {
		return httpError(err)
	}

	if state.Liked {
		if ownerID, ok := h.Resolver.OwnerOf(ref); ok && ownerID != userID {
			actor, err := h.UserRepo.GetUserByID(userID)
			if err == nil {
				_ = h.NotificationRepo.CreateNotification(&models.Notification{
					RecipientID: ownerID,
					ActorID:     userID,
					Type:        models.NotificationLike,
					Title:       "New like",
					Message:     fmt.Sprintf("%s liked your %s", actor.Name, ref.Kind),
					Link:        fmt.Sprintf("/%s/%s", ref.Kind, ref.ID),
				})
			}
		}
	}
	return c.JSON(http.StatusOK, state)
}

// LikeStatus reports whether the user has liked the target and the total count.
func (h *LikeHandler) LikeStatus(c echo.Context) error {
	userID := getUserIDFromContext(c)
	ref, herr := contentRefFromPath(c)
	if herr != nil {
		return herr
	}
	liked, err := h.LikeRepo.HasLiked(userID, ref)
	if err != nil {
		return httpError(err)
	}
	count, err := h.LikeRepo.Count(ref)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, models.LikeState{Liked: liked, Count: count})
}

func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes/:targetType/:targetId", h.ToggleLike)
	g.GET("/likes/:targetType/:targetId", h.LikeStatus)
}

// ContentResolver maps a content reference to the user who owns it, for the
// kinds stored locally. External kinds resolve to no owner.
type ContentResolver struct {
	PostRepo     repositories.PostRepository
	ProjectRepo  repositories.ProjectRepository
	ResearchRepo repositories.ResearchRepository
	CommentRepo  repositories.CommentRepository
}

func (r *ContentResolver) OwnerOf(ref models.ContentRef) (uint, bool) {
	if r == nil {
		return 0, false
	}
	id64, err := strconv.ParseUint(ref.ID, 10, 32)
	if err != nil {
		return 0, false
	}
	id := uint(id64)
	switch ref.Kind {
	case models.KindPost:
		if r.PostRepo != nil {
			if p, err := r.PostRepo.GetPostByID(id); err == nil {
				return p.UserID, true
			}
		}
	case models.KindProject:
		if r.ProjectRepo != nil {
			if p, err := r.ProjectRepo.GetProjectByID(id); err == nil {
				return p.UserID, true
			}
		}
	case models.KindResearch:
		if r.ResearchRepo != nil {
			if p, err := r.ResearchRepo.GetResearchByID(id); err == nil {
				return p.UserID, true
			}
		}
	case models.KindComment:
		if r.CommentRepo != nil {
			if cm, err := r.CommentRepo.GetCommentByID(id); err == nil {
				return cm.UserID, true
			}
		}
	}
	return 0, false
}
