package service

import (
	"errors"

	"github.com/roastline/roastline-backend/config"
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/pkg/logger"
	"github.com/roastline/roastline-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminNotFound      = errors.New("admin user not found")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrEmailTaken         = errors.New("email already in use")
)

type AuthService interface {
	Register(username, email, password string) (*model.AdminUser, error)
	Login(username, password string) (*util.TokenPair, *model.AdminUser, error)
	GetAdminByID(id uint) (*model.AdminUser, error)
}

type authService struct {
	adminRepo repository.AdminUserRepository
	jwtConfig *config.JWTConfig
}

func NewAuthService(adminRepo repository.AdminUserRepository, jwtConfig *config.JWTConfig) AuthService {
	return &authService{
		adminRepo: adminRepo,
		jwtConfig: jwtConfig,
	}
}

func (s *authService) Register(username, email, password string) (*model.AdminUser, error) {
	logger.Info("Registering admin user", map[string]interface{}{
		"username": username,
		"email":    email,
	})

	if _, err := s.adminRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.adminRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, err
	}

	admin := &model.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		logger.Error("Failed to create admin user", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	logger.Info("Admin user registered", map[string]interface{}{
		"admin_id": admin.ID,
		"username": username,
	})
	return admin, nil
}

func (s *authService) Login(username, password string) (*util.TokenPair, *model.AdminUser, error) {
	logger.Info("Admin login attempt", map[string]interface{}{
		"username": username,
	})

	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: unknown username", map[string]interface{}{
				"username": username,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(admin.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"username": username,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		admin.ID,
		admin.Email,
		"admin",
		s.jwtConfig.Secret,
		s.jwtConfig.AccessTokenExpiry,
		s.jwtConfig.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return nil, nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"admin_id": admin.ID,
		"username": username,
	})
	return tokens, admin, nil
}

func (s *authService) GetAdminByID(id uint) (*model.AdminUser, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}
