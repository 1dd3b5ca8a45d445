// File: /controllers/auth_controller.go
package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"fleetexpense-api/middleware"
	"fleetexpense-api/models"
	"fleetexpense-api/services"
	"fleetexpense-api/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	userService *services.UserService
	jwtSecret   string
	jwtTTL      time.Duration
}

func NewAuthController(userService *services.UserService, jwtSecret string, jwtTTL time.Duration) *AuthController {
	return &AuthController{
		userService: userService,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
	}
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup creates a plain user account and signs it in.
func (ac *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, err := ac.userService.Create(c.Request.Context(), services.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleUser,
	})
	if err != nil {
		handleServiceError(c, err, "Failed to create account", "email", req.Email)
		return
	}

	token, err := middleware.GenerateToken(ac.jwtSecret, ac.jwtTTL, user)
	if err != nil {
		handleServiceError(c, err, "Failed to generate token", "user_id", user.ID)
		return
	}

	slog.InfoContext(c.Request.Context(), "User signed up", "user_id", user.ID)
	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, err := ac.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, "Failed to sign in", "email", req.Email)
		return
	}

	token, err := middleware.GenerateToken(ac.jwtSecret, ac.jwtTTL, user)
	if err != nil {
		handleServiceError(c, err, "Failed to generate token", "user_id", user.ID)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout is stateless; the client drops its token.
func (ac *AuthController) Logout(c *gin.Context) {
	utils.SendSuccess(c, "Logged out successfully", nil)
}
