package handler

import (
	"net/http"

	"charmly/internal/domain"
	"charmly/internal/middleware"
	"charmly/internal/models"
	"charmly/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc    *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// PreferencesPayload validates preference shape at the boundary. Range
// ordering (min <= max) is enforced here; the store stays permissive.
type PreferencesPayload struct {
	Interests          []string `json:"interests"`
	CommunicationStyle string   `json:"communication_style" binding:"omitempty,oneof=casual formal friendly professional"`
	RelationshipGoal   string   `json:"relationship_goal" binding:"omitempty,oneof=friendship romance networking casual"`
	AgeMin             int      `json:"age_min" binding:"omitempty,gte=18"`
	AgeMax             int      `json:"age_max" binding:"omitempty,gtefield=AgeMin"`
	HeightMin          int      `json:"height_min" binding:"omitempty,gte=100,lte=250"`
	HeightMax          int      `json:"height_max" binding:"omitempty,gtefield=HeightMin,lte=250"`
}

// ToModel fills unset fields with the product defaults.
func (p *PreferencesPayload) ToModel() models.Preferences {
	prefs := models.Preferences{
		CommunicationStyle: domain.StyleFriendly,
		RelationshipGoal:   domain.GoalFriendship,
		AgeMin:             18,
		AgeMax:             100,
		HeightMin:          150,
		HeightMax:          200,
	}
	if p == nil {
		return prefs
	}
	prefs.Interests = p.Interests
	if p.CommunicationStyle != "" {
		prefs.CommunicationStyle = p.CommunicationStyle
	}
	if p.RelationshipGoal != "" {
		prefs.RelationshipGoal = p.RelationshipGoal
	}
	if p.AgeMin != 0 {
		prefs.AgeMin = p.AgeMin
	}
	if p.AgeMax != 0 {
		prefs.AgeMax = p.AgeMax
	}
	if p.HeightMin != 0 {
		prefs.HeightMin = p.HeightMin
	}
	if p.HeightMax != 0 {
		prefs.HeightMax = p.HeightMax
	}
	return prefs
}

type RegisterRequest struct {
	Name            string              `json:"name" binding:"required,min=2,max=50"`
	Email           string              `json:"email" binding:"required,email"`
	Password        string              `json:"password" binding:"required,min=6"`
	Country         string              `json:"country" binding:"required"`
	Height          int                 `json:"height" binding:"required,gte=100,lte=250"`
	Preferences     *PreferencesPayload `json:"preferences"`
	PersonalityTags []string            `json:"personality_tags"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Register(service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Country:         req.Country,
		HeightCm:        req.Height,
		Preferences:     req.Preferences.ToModel(),
		PersonalityTags: req.PersonalityTags,
	})
	if err != nil {
		if err == service.ErrEmailExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCreds {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := h.svc.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "refresh_token": refresh})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	if err := h.svc.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		if err == service.ErrInvalidCreds {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
