package controller

import (
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roastline/roastline-backend/internal/app/service"
	"github.com/roastline/roastline-backend/internal/errors"
	"github.com/roastline/roastline-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type adminView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Login authenticates an admin and issues a token pair.
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Username and password are required")
		return
	}

	tokens, admin, err := ctrl.authService.Login(req.Username, req.Password)
	if err != nil {
		if goerrors.Is(err, service.ErrInvalidCredentials) {
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthInvalidCredentials, "Invalid username or password")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"username": req.Username,
		})
		errors.InternalError(c, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"admin": adminView{
			ID:       admin.ID,
			Username: admin.Username,
			Email:    admin.Email,
		},
	})
}

// Me returns the authenticated admin's profile.
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	admin, err := ctrl.authService.GetAdminByID(userID)
	if err != nil {
		if goerrors.Is(err, service.ErrAdminNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Admin user not found")
			return
		}
		log.Error("Failed to fetch admin profile", err, map[string]interface{}{
			"admin_id": userID,
		})
		errors.InternalError(c, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": adminView{
			ID:       admin.ID,
			Username: admin.Username,
			Email:    admin.Email,
		},
	})
}
