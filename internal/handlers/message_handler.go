package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type MessageHandler struct {
	MessageRepo      repositories.MessageRepository
	UserRepo         repositories.UserRepository
	RelationshipRepo repositories.RelationshipRepository
}

func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, relRepo repositories.RelationshipRepository) *MessageHandler {
	return &MessageHandler{MessageRepo: messageRepo, UserRepo: userRepo, RelationshipRepo: relRepo}
}

// MessageView is a message as rendered to a client. Deleted messages carry a
// placeholder body, and replies carry a short preview of the quoted message.
type MessageView struct {
	models.Message
	ReplyPreview string `json:"reply_preview,omitempty"`
	LikeCount    int64  `json:"like_count"`
}

// SendMessage delivers a direct message. Blocked pairs cannot message each
// other in either direction.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message content cannot be empty")
	}
	if req.ReceiverID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot message yourself")
	}

	if _, err := h.UserRepo.GetUserByID(req.ReceiverID); err != nil {
		return httpError(err)
	}
	blocked, err := h.RelationshipRepo.IsBlocked(userID, req.ReceiverID)
	if err != nil {
		return httpError(err)
	}
	if blocked {
		return echo.NewHTTPError(http.StatusForbidden, "cannot message this user")
	}

	msg := models.Message{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Content:    content,
		ReplyToID:  req.ReplyToID,
	}
	if err := h.MessageRepo.Send(&msg); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// ListConversations returns one summary per peer with the latest message and
// the count of unread messages from that peer.
func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID := getUserIDFromContext(c)
	convos, err := h.MessageRepo.ListConversations(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, convos)
}

// ListMessages returns the thread with a peer, oldest first, and marks
// incoming messages as read.
func (h *MessageHandler) ListMessages(c echo.Context) error {
	userID := getUserIDFromContext(c)
	peerID, err := strconv.ParseUint(c.Param("peerId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	msgs, err := h.MessageRepo.ListBetween(userID, uint(peerID), limit)
	if err != nil {
		return httpError(err)
	}
	if err := h.MessageRepo.MarkConversationRead(userID, uint(peerID)); err != nil {
		return httpError(err)
	}

	byID := make(map[uint]*models.Message, len(msgs))
	for i := range msgs {
		byID[msgs[i].ID] = &msgs[i]
	}

	views := make([]MessageView, 0, len(msgs))
	for i := range msgs {
		view := MessageView{Message: msgs[i]}
		view.Sanitize()
		if msgs[i].ReplyToID != nil {
			view.ReplyPreview = h.replyPreview(*msgs[i].ReplyToID, byID)
		}
		count, err := h.MessageRepo.CountMessageLikes(msgs[i].ID)
		if err != nil {
			return httpError(err)
		}
		view.LikeCount = count
		views = append(views, view)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *MessageHandler) replyPreview(replyToID uint, byID map[uint]*models.Message) string {
	parent := byID[replyToID]
	if parent == nil {
		fetched, err := h.MessageRepo.GetMessageByID(replyToID)
		if err != nil {
			return models.DeletedReplyBody
		}
		parent = fetched
	}
	if parent.IsDeleted {
		return models.DeletedReplyBody
	}
	return parent.Content
}

// MarkRead marks every message from the peer as read without fetching the
// thread.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	userID := getUserIDFromContext(c)
	peerID, err := strconv.ParseUint(c.Param("peerId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := h.MessageRepo.MarkConversationRead(userID, uint(peerID)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"read": true})
}

// EditMessage replaces the content of a message the user sent. Deleted
// messages cannot be edited.
func (h *MessageHandler) EditMessage(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}

	var req models.EditMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message content cannot be empty")
	}

	msg, err := h.MessageRepo.Edit(uint(id), userID, content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, msg)
}

// DeleteMessage soft-deletes a message the user sent. The row stays so the
// thread keeps its shape; clients see a placeholder body.
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}
	if _, err := h.MessageRepo.Delete(uint(id), userID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

// ToggleMessageLike likes or unlikes a message in one of the user's threads.
func (h *MessageHandler) ToggleMessageLike(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}
	state, err := h.MessageRepo.ToggleMessageLike(uint(id), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}

func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/conversations", h.ListConversations)
	g.GET("/messages/with/:peerId", h.ListMessages)
	g.PUT("/messages/with/:peerId/read", h.MarkRead)
	g.PUT("/messages/:id", h.EditMessage)
	g.DELETE("/messages/:id", h.DeleteMessage)
	g.POST("/messages/:id/like", h.ToggleMessageLike)
}
