package handler

import (
	"net/http"
	"strconv"

	"charmly/internal/middleware"
	"charmly/internal/service"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	svc *service.MatchService
}

func NewMatchHandler(svc *service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// Find returns the ranked match list for the authenticated user.
func (h *MatchHandler) Find(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	results, err := h.svc.FindMatches(userID, limit)
	if err != nil {
		if err == service.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "finding matches failed"})
		return
	}
	if results == nil {
		results = []service.MatchResult{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": results})
}

type SendRequestRequest struct {
	TargetUserID uint `json:"target_user_id" binding:"required"`
}

func (h *MatchHandler) SendRequest(c *gin.Context) {
	var req SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	m, err := h.svc.CreateRequest(userID, req.TargetUserID)
	if err != nil {
		switch err {
		case service.ErrSelfMatch:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case service.ErrRequestExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sending match request failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"match_request": m})
}

type RespondRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accepted rejected"`
}

func (h *MatchHandler) Respond(c *gin.Context) {
	requestID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if requestID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	m, err := h.svc.Respond(uint(requestID), userID, req.Decision)
	if err != nil {
		switch err {
		case service.ErrRequestNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrNotRecipient:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case service.ErrAlreadyResponded:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrInvalidDecision:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "responding to match request failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"match_request": m})
}

// ListRequests returns match requests the user is party to, optionally
// filtered by ?status=.
func (h *MatchHandler) ListRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)
	status := c.Query("status")
	switch status {
	case "", "pending", "accepted", "rejected":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}
	list, err := h.svc.ListForUser(userID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing match requests failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"match_requests": list})
}
