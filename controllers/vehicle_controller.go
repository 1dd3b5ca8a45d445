// File: /controllers/vehicle_controller.go
package controllers

import (
	"net/http"

	"fleetexpense-api/services"
	"fleetexpense-api/utils"

	"github.com/gin-gonic/gin"
)

type VehicleController struct {
	vehicleService *services.VehicleService
	rollupService  *services.RollupService
}

func NewVehicleController(vehicleService *services.VehicleService, rollupService *services.RollupService) *VehicleController {
	return &VehicleController{
		vehicleService: vehicleService,
		rollupService:  rollupService,
	}
}

type VehicleRequest struct {
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registration_number"`
}

type UserEmailRollupRequest struct {
	DateWindowRequest
	Email string `json:"email" binding:"required"`
}

type VehicleRollupRequest struct {
	DateWindowRequest
	VehicleID string `json:"vehicleId" binding:"required"`
}

func (vc *VehicleController) GetVehicles(c *gin.Context) {
	vehicles, err := vc.vehicleService.List(c.Request.Context(), callerFrom(c))
	if err != nil {
		handleServiceError(c, err, "Failed to fetch vehicles")
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetMyVehicles lists the vehicles the caller is grouped with, even for admins.
func (vc *VehicleController) GetMyVehicles(c *gin.Context) {
	caller := callerFrom(c)
	caller.Role = ""

	vehicles, err := vc.vehicleService.List(c.Request.Context(), caller)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch vehicles", "user_id", caller.ID)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (vc *VehicleController) GetVehicle(c *gin.Context) {
	vehicleID := c.Param("id")

	vehicle, err := vc.vehicleService.Get(c.Request.Context(), callerFrom(c), vehicleID)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch vehicle", "vehicle_id", vehicleID)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	vehicle, err := vc.vehicleService.Create(c.Request.Context(), services.VehicleInput{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
	})
	if err != nil {
		handleServiceError(c, err, "Failed to create vehicle")
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	vehicleID := c.Param("id")

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	vehicle, err := vc.vehicleService.Update(c.Request.Context(), vehicleID, services.VehicleInput{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
	})
	if err != nil {
		handleServiceError(c, err, "Failed to update vehicle", "vehicle_id", vehicleID)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	vehicleID := c.Param("id")

	if err := vc.vehicleService.Delete(c.Request.Context(), vehicleID); err != nil {
		handleServiceError(c, err, "Failed to delete vehicle", "vehicle_id", vehicleID)
		return
	}
	utils.SendSuccess(c, "Vehicle deleted successfully", nil)
}

// GetExpenseCategory returns the fleet-wide rollup across every group.
func (vc *VehicleController) GetExpenseCategory(c *gin.Context) {
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

	rollup, err := vc.rollupService.ComputeRollup(c.Request.Context(), callerFrom(c), services.AllScope(), window)
	if err != nil {
		handleServiceError(c, err, "Failed to compute expenses", "scope", services.ScopeAll)
		return
	}
	c.JSON(http.StatusOK, rollup)
}

func (vc *VehicleController) GetExpenseCategoryByUserEmail(c *gin.Context) {
	var req UserEmailRollupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	window, err := req.window()
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	rollup, err := vc.rollupService.RollupByUserEmail(c.Request.Context(), callerFrom(c), req.Email, window)
	if err != nil {
		handleServiceError(c, err, "Failed to compute expenses", "scope", services.ScopeUser, "email", req.Email)
		return
	}
	c.JSON(http.StatusOK, rollup)
}

func (vc *VehicleController) GetExpenseCategoryByVehicle(c *gin.Context) {
	var req VehicleRollupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	window, err := req.window()
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	rollup, err := vc.rollupService.ComputeRollup(c.Request.Context(), callerFrom(c), services.VehicleScope(req.VehicleID), window)
	if err != nil {
		handleServiceError(c, err, "Failed to compute expenses", "scope", services.ScopeVehicle, "vehicle_id", req.VehicleID)
		return
	}
	c.JSON(http.StatusOK, rollup)
}

// GetVehiclesWithTotalAmount lists the caller's visible vehicles with their
// total spend.
func (vc *VehicleController) GetVehiclesWithTotalAmount(c *gin.Context) {
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
	caller := callerFrom(c)
	vehicles, err := vc.vehicleService.List(ctx, caller)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch vehicles")
		return
	}

	totals, err := vc.rollupService.VehiclesWithTotalAmount(ctx, caller, vehicles, window)
	if err != nil {
		handleServiceError(c, err, "Failed to compute vehicle totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}
