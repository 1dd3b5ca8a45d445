// File: /controllers/group_controller.go
package controllers

import (
	"net/http"

	"fleetexpense-api/repositories"
	"fleetexpense-api/services"
	"fleetexpense-api/utils"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	groupService  *services.GroupService
	rollupService *services.RollupService
}

func NewGroupController(groupService *services.GroupService, rollupService *services.RollupService) *GroupController {
	return &GroupController{
		groupService:  groupService,
		rollupService: rollupService,
	}
}

type AssignGroupRequest struct {
	UserID    string `json:"userId" binding:"required"`
	VehicleID string `json:"vehicleId" binding:"required"`
}

type GroupRollupRequest struct {
	DateWindowRequest
	GroupIDs []string `json:"groupIds" binding:"required"`
}

// GetGroups lists groups, optionally filtered by the userId and vehicleId
// query parameters.
func (gc *GroupController) GetGroups(c *gin.Context) {
	filter := repositories.GroupFilter{
		UserID:    c.Query("userId"),
		VehicleID: c.Query("vehicleId"),
	}

	groups, err := gc.groupService.List(c.Request.Context(), callerFrom(c), filter)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch groups")
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (gc *GroupController) AssignGroup(c *gin.Context) {
	var req AssignGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	group, err := gc.groupService.Assign(c.Request.Context(), req.UserID, req.VehicleID)
	if err != nil {
		handleServiceError(c, err, "Failed to assign vehicle", "user_id", req.UserID, "vehicle_id", req.VehicleID)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (gc *GroupController) DeleteGroup(c *gin.Context) {
	groupID := c.Param("id")

	if err := gc.groupService.Delete(c.Request.Context(), groupID); err != nil {
		handleServiceError(c, err, "Failed to delete group", "group_id", groupID)
		return
	}
	utils.SendSuccess(c, "Group deleted successfully", nil)
}

// GetExpenseCategory returns one rollup over the union of the given groups.
func (gc *GroupController) GetExpenseCategory(c *gin.Context) {
	var req GroupRollupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	window, err := req.window()
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	rollup, err := gc.rollupService.ComputeRollup(c.Request.Context(), callerFrom(c), services.GroupsScope(req.GroupIDs), window)
	if err != nil {
		handleServiceError(c, err, "Failed to compute expenses", "scope", services.ScopeGroups, "group_ids", req.GroupIDs)
		return
	}
	c.JSON(http.StatusOK, rollup)
}
