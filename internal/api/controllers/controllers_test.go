package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/request_models"
	"moneyflow/internal/models/response_models"
	"moneyflow/pkg/middleware"
	"moneyflow/pkg/utils"
)

var testSecret = []byte("controller-test-secret")

type stubAssistant struct {
	gotUser string
	gotReq  request_models.AssistantMessageRequest
	err     error
}

func (s *stubAssistant) SendMessage(_ context.Context, userID string, req request_models.AssistantMessageRequest) (*response_models.AssistantReply, error) {
	s.gotUser, s.gotReq = userID, req
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.AssistantReply{Intent: "general_query", Reply: "hello", SessionKey: "chat_history_session_s"}, nil
}

func (s *stubAssistant) GetHistory(_ context.Context, _, _, _ string) ([]db_models.ConversationMessage, error) {
	return nil, utils.ErrSessionKeyRequired
}

func (s *stubAssistant) ClearHistory(_ context.Context, _, _, _ string) error { return nil }

type stubEditRequests struct {
	err error
}

func (s *stubEditRequests) CreateEditRequest(context.Context, string, string, request_models.CreateEditRequestRequest) (*db_models.EditRequest, error) {
	return nil, s.err
}

func (s *stubEditRequests) ListPending(context.Context, string) ([]db_models.EditRequest, error) {
	return []db_models.EditRequest{}, nil
}

func (s *stubEditRequests) Approve(context.Context, string, string) (*db_models.EditRequest, error) {
	return nil, s.err
}

func (s *stubEditRequests) Reject(context.Context, string, string) (*db_models.EditRequest, error) {
	return nil, s.err
}

type stubTrips struct {
	gotUser string
	gotReq  request_models.RecordExpenseRequest
}

func (s *stubTrips) CreateTrip(context.Context, string, request_models.CreateTripRequest) (*db_models.Trip, error) {
	return nil, utils.ErrInvalidInput
}

func (s *stubTrips) GetTrip(context.Context, string, string) (*db_models.Trip, error) {
	return nil, utils.ErrTripNotFound
}

func (s *stubTrips) ApplyChanges(context.Context, string, string, []response_models.ChangeDescriptor) (*db_models.Trip, error) {
	return nil, utils.ErrNotTripEditor
}

func (s *stubTrips) SetCheckIn(context.Context, string, string, string, bool) error { return nil }

func (s *stubTrips) AddExpense(context.Context, string, string, request_models.CreateExpenseRequest) (*db_models.Expense, error) {
	return nil, utils.ErrInvalidInput
}

func (s *stubTrips) RecordExpense(_ context.Context, userID string, req request_models.RecordExpenseRequest) (*db_models.Expense, error) {
	s.gotUser, s.gotReq = userID, req
	return &db_models.Expense{UserID: userID, Amount: req.Amount, Description: req.Description}, nil
}

type stubBudget struct{}

func (stubBudget) GetTripBudget(context.Context, string, string) (*response_models.BudgetSummary, error) {
	return nil, utils.ErrTripNotFound
}

type stubMonitor struct{}

func (stubMonitor) Refresh(string) {}
func (stubMonitor) PendingCount(context.Context, string) (int, int64, error) {
	return 3, 1700000000, nil
}
func (stubMonitor) StopAll() {}

func newTestRouter(assistant *stubAssistant, edits *stubEditRequests) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(testSecret))

	ac := NewAssistantController(assistant)
	auth.POST("/assistant/messages", ac.SendMessage)
	auth.GET("/assistant/history", ac.GetHistory)

	ec := NewEditRequestController(edits, stubMonitor{})
	auth.GET("/edit-requests/pending/count", ec.PendingCount)
	auth.POST("/edit-requests/:requestId/approve", ec.Approve)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any, userID string) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := utils.CreateToken(userID, "", testSecret, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSendMessage_PassesAuthenticatedUser(t *testing.T) {
	assistant := &stubAssistant{}
	r := newTestRouter(assistant, &stubEditRequests{})

	w, resp := do(t, r, http.MethodPost, "/assistant/messages",
		map[string]string{"message": "hi", "session_id": "s"}, "user-7")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, "user-7", assistant.gotUser)
	assert.Equal(t, "s", assistant.gotReq.SessionID)
}

func TestSendMessage_RequiresTokenAndMessage(t *testing.T) {
	r := newTestRouter(&stubAssistant{}, &stubEditRequests{})

	w, _ := do(t, r, http.MethodPost, "/assistant/messages", map[string]string{"message": "hi"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/assistant/messages", map[string]string{}, "user-7")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	r := newTestRouter(
		&stubAssistant{err: utils.ErrNotTripMember},
		&stubEditRequests{err: utils.ErrRequestAlreadyResolved},
	)

	w, _ := do(t, r, http.MethodPost, "/assistant/messages", map[string]string{"message": "hi", "trip_id": "t"}, "u")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, http.MethodGet, "/assistant/history", nil, "u")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := do(t, r, http.MethodPost, "/edit-requests/abc/approve", nil, "u")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, utils.ErrRequestAlreadyResolved.Error(), resp.Message)
}

func TestRecordExpense_WithoutTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	trips := &stubTrips{}
	r := gin.New()
	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(testSecret))
	auth.POST("/expenses", NewTripController(trips, stubBudget{}).RecordExpense)

	w, _ := do(t, r, http.MethodPost, "/expenses", map[string]any{
		"amount": 42.5, "description": "Lunch [Trip: Paris Getaway]", "date": "2024-05-02",
	}, "alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", trips.gotUser)
	assert.Empty(t, trips.gotReq.TripID)
	assert.Equal(t, 42.5, trips.gotReq.Amount)
	assert.Equal(t, "Lunch [Trip: Paris Getaway]", trips.gotReq.Description)

	w, _ = do(t, r, http.MethodPost, "/expenses", map[string]any{"description": "no amount"}, "alice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPendingCount(t *testing.T) {
	r := newTestRouter(&stubAssistant{}, &stubEditRequests{})

	w, resp := do(t, r, http.MethodGet, "/edit-requests/pending/count", nil, "owner")
	require.Equal(t, http.StatusOK, w.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var got response_models.PendingCountResponse
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, int64(1700000000), got.UpdatedAt)
}
