package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneyflow/internal/models/request_models"
	"moneyflow/internal/services"
	"moneyflow/pkg/middleware"
	"moneyflow/pkg/utils"
)

type AssistantController struct {
	assistantService services.AssistantServiceInterface
}

func NewAssistantController(assistantService services.AssistantServiceInterface) *AssistantController {
	return &AssistantController{assistantService: assistantService}
}

// SendMessage godoc
// @Summary Send a message to the trip assistant
// @Description Classifies the message, dispatches it to plan generation, plan modification or a general answer, and stores both sides of the exchange
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body request_models.AssistantMessageRequest true "Message with optional trip_id or session_id"
// @Success 200 {object} response_models.AssistantReply
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /assistant/messages [post]
func (a *AssistantController) SendMessage(c *gin.Context) {
	var req request_models.AssistantMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reply, err := a.assistantService.SendMessage(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reply, "Message processed")
}

// GetHistory godoc
// @Summary Get chat history
// @Tags Assistant
// @Produce json
// @Param trip_id query string false "Trip ID"
// @Param session_id query string false "Session ID, used when no trip_id is given"
// @Success 200 {array} db_models.ConversationMessage
// @Security BearerAuth
// @Router /assistant/history [get]
func (a *AssistantController) GetHistory(c *gin.Context) {
	history, err := a.assistantService.GetHistory(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Query("trip_id"),
		c.Query("session_id"),
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "History fetched successfully")
}

// ClearHistory godoc
// @Summary Clear chat history
// @Tags Assistant
// @Param trip_id query string false "Trip ID"
// @Param session_id query string false "Session ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /assistant/history [delete]
func (a *AssistantController) ClearHistory(c *gin.Context) {
	err := a.assistantService.ClearHistory(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Query("trip_id"),
		c.Query("session_id"),
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "History cleared")
}
