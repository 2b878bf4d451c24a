package handler

import (
	"net/http"
	"strconv"

	"charmly/internal/middleware"
	"charmly/internal/models"

	"github.com/gin-gonic/gin"
)

// NotificationStore is what the handler needs from the notification
// repository.
type NotificationStore interface {
	ListByUserID(userID uint, limit, offset int) ([]models.Notification, error)
	MarkRead(id, userID uint) error
	CountUnread(userID uint) (int64, error)
}

type NotificationHandler struct {
	store NotificationStore
}

func NewNotificationHandler(store NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit > 100 {
		limit = 100
	}
	list, err := h.store.ListByUserID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing notifications failed"})
		return
	}
	unread, err := h.store.CountUnread(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "counting unread failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unread_count": unread})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	userID := middleware.GetUserID(c)
	if err := h.store.MarkRead(uint(id), userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found or already read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
