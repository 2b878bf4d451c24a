package service

import (
	"testing"
	"time"

	"charmly/config"
	"charmly/internal/auth"
	"charmly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  time.Hour,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "charmly-test",
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)

	u, access, refresh, err := svc.Register(RegisterInput{
		Name:     "alice",
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
		Country:  "Kenya",
		HeightCm: 170,
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	// never store the plaintext
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)

	got, _, _, err := svc.Login("alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, _, _, err = svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)

	_, _, _, err := svc.Register(RegisterInput{Name: "a", Email: "a@b.c", Password: "password1"})
	require.NoError(t, err)
	_, _, _, err = svc.Register(RegisterInput{Name: "aa", Email: "a@b.c", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLoginWithGoogleNewAndReturning(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)

	u, _, _, isNew, err := svc.LoginWithGoogle("g-123", "alice@gmail.com", "Alice", "http://img")
	require.NoError(t, err)
	assert.True(t, isNew)
	require.NotNil(t, u.GoogleID)
	assert.Equal(t, "g-123", *u.GoogleID)

	again, _, _, isNew, err := svc.LoginWithGoogle("g-123", "alice@gmail.com", "Alice", "http://img")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, u.ID, again.ID)
}

func TestLoginWithGoogleLinksExistingEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)

	u, _, _, err := svc.Register(RegisterInput{Name: "alice", Email: "alice@gmail.com", Password: "password1"})
	require.NoError(t, err)

	linked, _, _, isNew, err := svc.LoginWithGoogle("g-456", "alice@gmail.com", "Alice", "")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, u.ID, linked.ID)
	require.NotNil(t, linked.GoogleID)
	assert.Equal(t, "g-456", *linked.GoogleID)
	// the original password still works
	_, _, _, err = svc.Login("alice@gmail.com", "password1")
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)

	u, _, _, err := svc.Register(RegisterInput{Name: "alice", Email: "a@b.c", Password: "oldpass123"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(u.ID, "wrong", "newpass123"), ErrInvalidCreds)
	require.NoError(t, svc.ChangePassword(u.ID, "oldpass123", "newpass123"))

	_, _, _, err = svc.Login("a@b.c", "oldpass123")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("a@b.c", "newpass123")
	assert.NoError(t, err)
}

func TestChangePasswordGoogleOnlyAccount(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)
	gid := "g-789"
	u := users.add(&models.User{Name: "g", Email: "g@gmail.com", GoogleID: &gid})

	err := svc.ChangePassword(u.ID, "", "newpass123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCreds)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)
	u, _, refresh, err := svc.Register(RegisterInput{Name: "alice", Email: "a@b.c", Password: "password1"})
	require.NoError(t, err)

	access, newRefresh, err := svc.RefreshToken(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newRefresh)

	claims, err := auth.ParseAccessToken(&testConfig().JWT, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, _, err = svc.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
