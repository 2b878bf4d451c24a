package handler

import (
	"net/http"
	"strconv"

	"charmly/internal/middleware"
	"charmly/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required,max=4000"`
}

// Send persists the message and, when the receiver is the AI companion,
// returns its reply in the same response.
func (h *ChatHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	res, err := h.svc.Send(c.Request.Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		if err == service.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sending message failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// History returns one page of the conversation with :user_id.
func (h *ChatHandler) History(c *gin.Context) {
	otherID, _ := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if otherID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	userID := middleware.GetUserID(c)
	list, pagination, err := h.svc.History(userID, uint(otherID), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "loading history failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": list, "pagination": pagination})
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	messageID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if messageID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}
	userID := middleware.GetUserID(c)
	m, err := h.svc.MarkRead(uint(messageID), userID)
	if err != nil {
		if err == service.ErrMessageNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "marking message failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": m})
}

func (h *ChatHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	count, err := h.svc.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "counting unread failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
