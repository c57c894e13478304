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

type EditRequestController struct {
	editRequestService services.EditRequestServiceInterface
	pendingMonitor     services.PendingMonitorInterface
}

func NewEditRequestController(
	editRequestService services.EditRequestServiceInterface,
	pendingMonitor services.PendingMonitorInterface,
) *EditRequestController {
	return &EditRequestController{editRequestService: editRequestService, pendingMonitor: pendingMonitor}
}

// CreateEditRequest godoc
// @Summary Ask the trip owner to approve a change
// @Description Non-owner members only. kind is activity_edit (needs activity_id) or permission_change.
// @Tags EditRequest
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.CreateEditRequestRequest true "Edit request"
// @Success 200 {object} db_models.EditRequest
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/edit-requests [post]
func (e *EditRequestController) CreateEditRequest(c *gin.Context) {
	var req request_models.CreateEditRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	er, err := e.editRequestService.CreateEditRequest(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("tripId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, er, "Edit request created")
}

// ListPending godoc
// @Summary Pending edit requests on trips owned by the caller
// @Tags EditRequest
// @Produce json
// @Success 200 {array} db_models.EditRequest
// @Security BearerAuth
// @Router /edit-requests/pending [get]
func (e *EditRequestController) ListPending(c *gin.Context) {
	list, err := e.editRequestService.ListPending(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Pending requests fetched successfully")
}

// PendingCount godoc
// @Summary Number of pending edit requests
// @Description Served from the periodic poll of the caller's pending list
// @Tags EditRequest
// @Produce json
// @Success 200 {object} response_models.PendingCountResponse
// @Security BearerAuth
// @Router /edit-requests/pending/count [get]
func (e *EditRequestController) PendingCount(c *gin.Context) {
	count, at, err := e.pendingMonitor.PendingCount(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PendingCountResponse{Count: count, UpdatedAt: at}, "")
}

// Approve godoc
// @Summary Approve an edit request
// @Tags EditRequest
// @Produce json
// @Param requestId path string true "Edit request ID"
// @Success 200 {object} db_models.EditRequest
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /edit-requests/{requestId}/approve [post]
func (e *EditRequestController) Approve(c *gin.Context) {
	er, err := e.editRequestService.Approve(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("requestId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, er, "Edit request approved")
}

// Reject godoc
// @Summary Reject an edit request
// @Tags EditRequest
// @Produce json
// @Param requestId path string true "Edit request ID"
// @Success 200 {object} db_models.EditRequest
// @Security BearerAuth
// @Router /edit-requests/{requestId}/reject [post]
func (e *EditRequestController) Reject(c *gin.Context) {
	er, err := e.editRequestService.Reject(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("requestId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, er, "Edit request rejected")
}
