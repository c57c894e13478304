package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneyflow/internal/models/request_models"
	"moneyflow/internal/models/response_models"
	"moneyflow/internal/services"
	"moneyflow/pkg/middleware"
	"moneyflow/pkg/utils"
)

type TripController struct {
	tripService   services.TripServiceInterface
	budgetService services.BudgetServiceInterface
}

func NewTripController(tripService services.TripServiceInterface, budgetService services.BudgetServiceInterface) *TripController {
	return &TripController{tripService: tripService, budgetService: budgetService}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description The caller becomes the owner. end_date must not be before start_date.
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip"
// @Success 200 {object} db_models.Trip
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip created successfully")
}

// GetTrip godoc
// @Summary Get a trip with its activities
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} db_models.Trip
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	trip, err := t.tripService.GetTrip(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("tripId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// ApplyChanges godoc
// @Summary Apply assistant change descriptors
// @Description Applies "delete_all" and "add" descriptors in one transaction. Editors only.
// @Tags Trip
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body []response_models.ChangeDescriptor true "Changes"
// @Success 200 {object} db_models.Trip
// @Security BearerAuth
// @Router /trips/{tripId}/changes [post]
func (t *TripController) ApplyChanges(c *gin.Context) {
	var changes []response_models.ChangeDescriptor
	if err := c.ShouldBindJSON(&changes); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.ApplyChanges(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("tripId"), changes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Changes applied")
}

// CheckIn godoc
// @Summary Set the check-in flag of an activity
// @Tags Trip
// @Accept json
// @Param tripId path string true "Trip ID"
// @Param activityId path string true "Activity ID"
// @Param request body request_models.CheckInRequest true "Check-in flag"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/activities/{activityId}/check-in [post]
func (t *TripController) CheckIn(c *gin.Context) {
	var req request_models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := t.tripService.SetCheckIn(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("tripId"),
		c.Param("activityId"),
		req.CheckedIn,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Check-in updated")
}

// AddExpense godoc
// @Summary Record an expense against a trip
// @Tags Trip
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.CreateExpenseRequest true "Expense"
// @Success 200 {object} db_models.Expense
// @Security BearerAuth
// @Router /trips/{tripId}/expenses [post]
func (t *TripController) AddExpense(c *gin.Context) {
	var req request_models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	exp, err := t.tripService.AddExpense(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("tripId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, exp, "Expense recorded")
}

// RecordExpense godoc
// @Summary Record an expense, optionally without a trip
// @Description Without trip_id the expense is stored loose. A [Trip: name] token in the description or its date attributes it to a trip budget.
// @Tags Expense
// @Accept json
// @Produce json
// @Param request body request_models.RecordExpenseRequest true "Expense"
// @Success 200 {object} db_models.Expense
// @Security BearerAuth
// @Router /expenses [post]
func (t *TripController) RecordExpense(c *gin.Context) {
	var req request_models.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	exp, err := t.tripService.RecordExpense(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, exp, "Expense recorded")
}

// GetBudget godoc
// @Summary Budget reconciliation for a trip
// @Description Attributes loose expenses to the trip by id, [Trip: name] token or date window and reports spend figures
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.BudgetSummary
// @Security BearerAuth
// @Router /trips/{tripId}/budget [get]
func (t *TripController) GetBudget(c *gin.Context) {
	summary, err := t.budgetService.GetTripBudget(c.Request.Context(), c.Param("tripId"), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Budget fetched successfully")
}
