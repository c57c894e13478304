package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneyflow/internal/models/request_models"
	"moneyflow/internal/services"
	"moneyflow/pkg/middleware"
	"moneyflow/pkg/utils"
)

type PreferenceController struct {
	preferenceService services.PreferenceServiceInterface
}

func NewPreferenceController(preferenceService services.PreferenceServiceInterface) *PreferenceController {
	return &PreferenceController{preferenceService: preferenceService}
}

// GetLastTrip godoc
// @Summary Last trip opened on the map
// @Tags User
// @Produce json
// @Success 200 {object} request_models.SetLastTripRequest
// @Security BearerAuth
// @Router /users/me/last-trip [get]
func (p *PreferenceController) GetLastTrip(c *gin.Context) {
	tripID, err := p.preferenceService.GetLastTrip(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"trip_id": tripID}, "")
}

// SetLastTrip godoc
// @Summary Remember the trip opened on the map
// @Tags User
// @Accept json
// @Param request body request_models.SetLastTripRequest true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/last-trip [put]
func (p *PreferenceController) SetLastTrip(c *gin.Context) {
	var req request_models.SetLastTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "trip_id must be a uuid")
		return
	}

	if err := p.preferenceService.SetLastTrip(c.Request.Context(), c.GetString(middleware.ContextUserID), req.TripID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Last trip saved")
}
