package handlers

import (
	"fmt"
	"net/http"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	CommentRepo      repositories.CommentRepository
	UserRepo         repositories.UserRepository
	NotificationRepo repositories.NotificationRepository
}

func NewCommentHandler(commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *CommentHandler {
	return &CommentHandler{CommentRepo: commentRepo, UserRepo: userRepo, NotificationRepo: notifRepo}
}

// CreateComment posts a comment or, when parent_id is set, a reply. A reply's
// parent must belong to the same target.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	kind, err := models.ParseContentKind(req.TargetType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment := models.Comment{
		UserID:     userID,
		TargetType: kind,
		TargetID:   req.TargetID,
		ParentID:   req.ParentID,
		Content:    req.Content,
	}
	if err := h.CommentRepo.CreateComment(&comment); err != nil {
		return httpError(err)
	}

	if comment.ParentID != nil {
		parent, err := h.CommentRepo.GetCommentByID(*comment.ParentID)
		if err == nil && parent.UserID != userID {
			actor, err := h.UserRepo.GetUserByID(userID)
			if err == nil {
				_ = h.NotificationRepo.CreateNotification(&models.Notification{
					RecipientID: parent.UserID,
					ActorID:     userID,
					Type:        models.NotificationCommentReply,
					Title:       "New reply",
					Message:     fmt.Sprintf("%s replied to your comment", actor.Name),
					Link:        fmt.Sprintf("/%s/%s", comment.TargetType, comment.TargetID),
				})
			}
		}
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListComments returns all comments on a target, oldest first.
func (h *CommentHandler) ListComments(c echo.Context) error {
	ref, herr := contentRefFromPath(c)
	if herr != nil {
		return herr
	}
	comments, err := h.CommentRepo.ListByTarget(ref)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/comments/:targetType/:targetId", h.ListComments)
}
