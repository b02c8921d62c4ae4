package service

import (
	"testing"
	"time"

	"github.com/roastline/roastline-backend/config"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/db"
	"github.com/roastline/roastline-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	adminRepo := repository.NewAdminUserRepository(testDB)
	jwtConfig := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
	return NewAuthService(adminRepo, jwtConfig)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	admin, err := authService.Register("admin", "admin@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotZero(t, admin.ID)
	assert.NotEqual(t, "secret123", admin.PasswordHash)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register("admin", "admin@example.com", "secret123")
	require.NoError(t, err)

	_, err = authService.Register("admin", "other@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register("admin", "admin@example.com", "secret123")
	require.NoError(t, err)

	_, err = authService.Register("admin2", "admin@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, err := authService.Register("admin", "admin@example.com", "secret123")
	require.NoError(t, err)

	tokens, admin, err := authService.Login("admin", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, admin.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register("admin", "admin@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = authService.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Login("ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetAdminByID(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, err := authService.Register("admin", "admin@example.com", "secret123")
	require.NoError(t, err)

	admin, err := authService.GetAdminByID(registered.ID)
	assert.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)

	_, err = authService.GetAdminByID(9999)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
