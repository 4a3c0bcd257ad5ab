package handlers

import (
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	NotificationRepo repositories.NotificationRepository
}

func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{NotificationRepo: notifRepo}
}

// ListNotifications returns the user's notifications, newest first, paginated.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := getUserIDFromContext(c)
	page, limit := paginationParams(c)

	notifications, total, err := h.NotificationRepo.GetByRecipientID(userID, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"meta":          paginationMeta(page, limit, total),
	})
}

// UnreadCount returns how many notifications the user has not read.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID := getUserIDFromContext(c)
	count, err := h.NotificationRepo.GetUnreadCount(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one of the user's notifications as read.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}
	if err := h.NotificationRepo.MarkAsRead(uint(id), userID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"read": true})
}

// MarkAllAsRead marks every unread notification of the user as read.
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if err := h.NotificationRepo.MarkAllAsRead(userID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"read": true})
}

func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
	g.GET("/notifications/unread-count", h.UnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// paginationParams reads page and limit query params with sane bounds.
func paginationParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func paginationMeta(page, limit int, total int64) echo.Map {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return echo.Map{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages,
	}
}
