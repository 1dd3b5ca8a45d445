// File: /controllers/user_controller.go
package controllers

import (
	"net/http"

	"fleetexpense-api/models"
	"fleetexpense-api/services"
	"fleetexpense-api/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService   *services.UserService
	rollupService *services.RollupService
}

func NewUserController(userService *services.UserService, rollupService *services.RollupService) *UserController {
	return &UserController{
		userService:   userService,
		rollupService: rollupService,
	}
}

type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role"`
}

func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.userService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, err := uc.userService.Create(c.Request.Context(), services.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		handleServiceError(c, err, "Failed to create user", "email", req.Email)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (uc *UserController) GetUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := uc.userService.Get(c.Request.Context(), callerFrom(c), userID)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch user", "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) GetMe(c *gin.Context) {
	caller := callerFrom(c)

	user, err := uc.userService.Get(c.Request.Context(), caller, caller.ID)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch profile", "user_id", caller.ID)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	if err := uc.userService.Delete(c.Request.Context(), callerFrom(c), userID); err != nil {
		handleServiceError(c, err, "Failed to delete user", "user_id", userID)
		return
	}
	utils.SendSuccess(c, "User deleted successfully", nil)
}

// GetUsersWithTotalAmount lists every user with their total spend.
func (uc *UserController) GetUsersWithTotalAmount(c *gin.Context) {
	var req DateWindowRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	window, err := req.window()
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	users, err := uc.userService.List(ctx)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch users")
		return
	}

	totals, err := uc.rollupService.UsersWithTotalAmount(ctx, callerFrom(c), users, window)
	if err != nil {
		handleServiceError(c, err, "Failed to compute user totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}
