// File: /controllers/expense_controller.go
package controllers

import (
	"net/http"

	"fleetexpense-api/models"
	"fleetexpense-api/services"
	"fleetexpense-api/utils"

	"github.com/gin-gonic/gin"
)

type ExpenseController struct {
	expenseService *services.ExpenseService
}

func NewExpenseController(expenseService *services.ExpenseService) *ExpenseController {
	return &ExpenseController{expenseService: expenseService}
}

// ExpenseRequest is the body for every category. Fields of other
// categories are ignored.
type ExpenseRequest struct {
	GroupID string   `json:"group_id" binding:"required"`
	Amount  *float64 `json:"amount"`
	Date    string   `json:"date" binding:"required"`

	PricePerLiter float64 `json:"price_per_liter"`
	Liters        float64 `json:"liters"`
	KmStart       float64 `json:"km_start"`
	KmEnd         float64 `json:"km_end"`

	ServiceType string `json:"service_type"`
	Name        string `json:"name"`
	Description string `json:"description"`

	TaxType   string `json:"tax_type"`
	ValidFrom string `json:"valid_from"`
	ValidTo   string `json:"valid_to"`
}

func (r ExpenseRequest) input() (services.ExpenseInput, error) {
	date, _, err := utils.ParseDate(r.Date)
	if err != nil {
		return services.ExpenseInput{}, err
	}

	in := services.ExpenseInput{
		GroupID:       r.GroupID,
		Amount:        r.Amount,
		Date:          date,
		PricePerLiter: r.PricePerLiter,
		Liters:        r.Liters,
		KmStart:       r.KmStart,
		KmEnd:         r.KmEnd,
		ServiceType:   r.ServiceType,
		Name:          r.Name,
		Description:   r.Description,
		TaxType:       r.TaxType,
	}

	if r.ValidFrom != "" {
		t, _, err := utils.ParseDate(r.ValidFrom)
		if err != nil {
			return services.ExpenseInput{}, err
		}
		in.ValidFrom = &t
	}
	if r.ValidTo != "" {
		t, _, err := utils.ParseDate(r.ValidTo)
		if err != nil {
			return services.ExpenseInput{}, err
		}
		in.ValidTo = &t
	}
	return in, nil
}

func categoryParam(c *gin.Context) (models.ExpenseCategory, bool) {
	category, err := models.ParseExpenseCategory(c.Param("category"))
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "Unknown expense category")
		return "", false
	}
	return category, true
}

func (ec *ExpenseController) bindInput(c *gin.Context) (services.ExpenseInput, bool) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return services.ExpenseInput{}, false
	}
	in, err := req.input()
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return services.ExpenseInput{}, false
	}
	return in, true
}

func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	in, ok := ec.bindInput(c)
	if !ok {
		return
	}

	record, err := ec.expenseService.Create(c.Request.Context(), callerFrom(c), category, in)
	if err != nil {
		handleServiceError(c, err, "Failed to create expense", "category", category, "group_id", in.GroupID)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetExpenses lists records of the category, optionally filtered by the
// groupId, startDate and endDate query parameters.
func (ec *ExpenseController) GetExpenses(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	window, err := utils.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	groupID := c.Query("groupId")
	records, err := ec.expenseService.List(c.Request.Context(), callerFrom(c), category, groupID, window)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch expenses", "category", category, "group_id", groupID)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (ec *ExpenseController) GetExpense(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	expenseID := c.Param("id")

	record, err := ec.expenseService.Get(c.Request.Context(), callerFrom(c), category, expenseID)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch expense", "category", category, "expense_id", expenseID)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (ec *ExpenseController) UpdateExpense(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	in, ok := ec.bindInput(c)
	if !ok {
		return
	}
	expenseID := c.Param("id")

	record, err := ec.expenseService.Update(c.Request.Context(), callerFrom(c), category, expenseID, in)
	if err != nil {
		handleServiceError(c, err, "Failed to update expense", "category", category, "expense_id", expenseID)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	expenseID := c.Param("id")

	if err := ec.expenseService.Delete(c.Request.Context(), callerFrom(c), category, expenseID); err != nil {
		handleServiceError(c, err, "Failed to delete expense", "category", category, "expense_id", expenseID)
		return
	}
	utils.SendSuccess(c, "Expense deleted successfully", nil)
}
