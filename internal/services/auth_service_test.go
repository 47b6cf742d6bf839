package services

import (
	"testing"
	"time"

	"github.com/safemm/safemm-backend/internal/config"
	"github.com/safemm/safemm-backend/internal/dto"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
	return NewAuthService(newTestDB(t), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	resp, err := auth.Register(&dto.RegisterRequest{Email: "mod@example.com", Password: "longenough"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "mod@example.com", resp.User.Email)

	_, err = auth.Register(&dto.RegisterRequest{Email: "mod@example.com", Password: "longenough"})
	require.ErrorIs(t, err, ErrEmailTaken)

	login, err := auth.Login(&dto.LoginRequest{Email: "mod@example.com", Password: "longenough"})
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)

	_, err = auth.Login(&dto.LoginRequest{Email: "mod@example.com", Password: "wrongpass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	auth := newAuthService(t)

	resp, err := auth.Register(&dto.RegisterRequest{Email: "mod@example.com", Password: "longenough"})
	require.NoError(t, err)

	rotated, err := auth.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	require.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The old token is revoked by rotation.
	_, err = auth.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	auth := newAuthService(t)

	resp, err := auth.Register(&dto.RegisterRequest{Email: "mod@example.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = auth.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidToken)
}
