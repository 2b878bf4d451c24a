package handler

import (
	"net/http"
	"strconv"
	"strings"

	"charmly/internal/middleware"
	"charmly/internal/service"
	"charmly/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MeHandler struct {
	users service.UserStore
	cloud cloudinary.Client
}

func NewMeHandler(users service.UserStore, cloud cloudinary.Client) *MeHandler {
	return &MeHandler{users: users, cloud: cloud}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type UpdateProfileRequest struct {
	Name            *string             `json:"name" binding:"omitempty,min=2,max=50"`
	Country         *string             `json:"country"`
	Height          *int                `json:"height" binding:"omitempty,gte=100,lte=250"`
	Preferences     *PreferencesPayload `json:"preferences"`
	PersonalityTags *[]string           `json:"personality_tags"`
}

// UpdateProfile mutates only the owner's record; the authenticated user is
// the only profile it can touch.
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	u, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Country != nil {
		u.Country = *req.Country
	}
	if req.Height != nil {
		u.HeightCm = *req.Height
	}
	if req.PersonalityTags != nil {
		u.PersonalityTags = *req.PersonalityTags
	}
	if req.Preferences != nil {
		p := req.Preferences
		if p.Interests != nil {
			u.Preferences.Interests = p.Interests
		}
		if p.CommunicationStyle != "" {
			u.Preferences.CommunicationStyle = p.CommunicationStyle
		}
		if p.RelationshipGoal != "" {
			u.Preferences.RelationshipGoal = p.RelationshipGoal
		}
		if p.AgeMin != 0 {
			u.Preferences.AgeMin = p.AgeMin
		}
		if p.AgeMax != 0 {
			u.Preferences.AgeMax = p.AgeMax
		}
		if p.HeightMin != 0 {
			u.Preferences.HeightMin = p.HeightMin
		}
		if p.HeightMax != 0 {
			u.Preferences.HeightMax = p.HeightMax
		}
	}
	if err := h.users.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UploadAvatar stores a profile photo in Cloudinary and saves the URL.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media uploads not configured"})
		return
	}
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	u, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	folder := "Charmly/avatars/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	u.AvatarURL = url
	if err := h.users.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
