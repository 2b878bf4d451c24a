package service

import (
	"errors"
	"fmt"
	"strings"

	"charmly/config"
	"charmly/internal/auth"
	"charmly/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("user with this email already exists")
	ErrInvalidCreds = errors.New("invalid email or password")
)

// UserStore is the persistence surface the services need from the user
// repository.
type UserStore interface {
	Create(u *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByGoogleID(googleID string) (*models.User, error)
	Update(u *models.User) error
	ListCandidates(excludeID uint, heightMin, heightMax, limit int) ([]models.User, error)
}

type AuthService struct {
	cfg   *config.Config
	users UserStore
}

func NewAuthService(cfg *config.Config, users UserStore) *AuthService {
	return &AuthService{cfg: cfg, users: users}
}

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	Country         string
	HeightCm        int
	Preferences     models.Preferences
	PersonalityTags []string
}

func (s *AuthService) Register(in RegisterInput) (*models.User, string, string, error) {
	_, err := s.users.GetByEmail(in.Email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Name:            in.Name,
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:    string(hash),
		Country:         in.Country,
		HeightCm:        in.HeightCm,
		PersonalityTags: in.PersonalityTags,
		Preferences:     in.Preferences,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.issueTokens(u)
	if err != nil {
		return u, "", "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) issueTokens(u *models.User) (access, refresh string, err error) {
	access, err = auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err = auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, refresh, err := s.issueTokens(u)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// LoginWithGoogle creates or finds a user by Google ID and returns user +
// tokens + isNew flag. Fresh Google accounts start with default preferences
// and fill in country/height during onboarding.
func (s *AuthService) LoginWithGoogle(googleID, email, name, avatarURL string) (*models.User, string, string, bool, error) {
	u, err := s.users.GetByGoogleID(googleID)
	if err == nil {
		access, refresh, terr := s.issueTokens(u)
		if terr != nil {
			return nil, "", "", false, terr
		}
		return u, access, refresh, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", false, err
	}
	// New user: check email not already used
	existing, _ := s.users.GetByEmail(email)
	if existing != nil {
		// Link Google to existing account
		gid := googleID
		existing.GoogleID = &gid
		if avatarURL != "" {
			existing.AvatarURL = avatarURL
		}
		if err := s.users.Update(existing); err != nil {
			return nil, "", "", false, err
		}
		access, refresh, terr := s.issueTokens(existing)
		if terr != nil {
			return nil, "", "", false, terr
		}
		return existing, access, refresh, false, nil
	}
	gid := googleID
	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	u = &models.User{
		Name:      name,
		Email:     email,
		GoogleID:  &gid,
		AvatarURL: avatarURL,
		Country:   "",
		HeightCm:  170,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", "", false, err
	}
	access, refresh, err := s.issueTokens(u)
	if err != nil {
		return nil, "", "", false, err
	}
	return u, access, refresh, true, nil
}

// ChangePassword updates the user's password. Requires current password verification.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.users.GetByID(userID)
	if err != nil || u == nil {
		return ErrInvalidCreds
	}
	if u.PasswordHash == "" {
		return errors.New("account uses Google sign-in; set a password first")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}

func (s *AuthService) RefreshToken(refreshToken string) (access, refresh string, err error) {
	token, err := jwt.ParseWithClaims(refreshToken, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", auth.ErrInvalidToken
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	var userID uint
	fmt.Sscanf(claims.Subject, "%d", &userID)
	u, err := s.users.GetByID(userID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokens(u)
}
