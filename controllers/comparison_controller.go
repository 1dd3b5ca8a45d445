// File: /controllers/comparison_controller.go
package controllers

import (
	"net/http"

	"fleetexpense-api/services"
	"fleetexpense-api/utils"

	"github.com/gin-gonic/gin"
)

type ComparisonController struct {
	rollupService *services.RollupService
}

func NewComparisonController(rollupService *services.RollupService) *ComparisonController {
	return &ComparisonController{rollupService: rollupService}
}

// ComparisonRequest is the body shared by the four comparison endpoints.
// Each endpoint reads only the fields of its mode.
type ComparisonRequest struct {
	DateWindowRequest
	UserID     string   `json:"userId"`
	VehicleID  string   `json:"vehicleId"`
	UserIDs    []string `json:"userIds"`
	VehicleIDs []string `json:"vehicleIds"`
	Detail     *bool    `json:"detail"`
}

func (cc *ComparisonController) GetUserComparison(c *gin.Context) {
	cc.compare(c, services.CompareUsers)
}

func (cc *ComparisonController) GetVehicleComparison(c *gin.Context) {
	cc.compare(c, services.CompareVehicles)
}

func (cc *ComparisonController) GetUserVehicleComparison(c *gin.Context) {
	cc.compare(c, services.CompareUserVehicles)
}

func (cc *ComparisonController) GetVehicleUserComparison(c *gin.Context) {
	cc.compare(c, services.CompareVehicleUsers)
}

func (cc *ComparisonController) compare(c *gin.Context, mode services.ComparisonMode) {
	var req ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	window, err := req.window()
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	request := services.ComparisonRequest{Mode: mode, Detail: true}
	if req.Detail != nil {
		request.Detail = *req.Detail
	}
	switch mode {
	case services.CompareUsers:
		request.UserIDs = req.UserIDs
	case services.CompareVehicles:
		request.VehicleIDs = req.VehicleIDs
	case services.CompareUserVehicles:
		request.UserID = req.UserID
		request.VehicleIDs = req.VehicleIDs
	case services.CompareVehicleUsers:
		request.VehicleID = req.VehicleID
		request.UserIDs = req.UserIDs
	}

	matrix, err := cc.rollupService.ComputeComparisonMatrix(c.Request.Context(), callerFrom(c), request, window)
	if err != nil {
		handleServiceError(c, err, "Failed to compute comparison",
			"mode", mode,
			"user_id", request.UserID,
			"vehicle_id", request.VehicleID,
			"user_ids", request.UserIDs,
			"vehicle_ids", request.VehicleIDs)
		return
	}
	c.JSON(http.StatusOK, matrix)
}
