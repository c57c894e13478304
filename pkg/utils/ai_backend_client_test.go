package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/models/db_models"
)

func TestInvoke_SendsInputAndHistory(t *testing.T) {
	var got InvokeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoke", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(InvokeResponse{Summary: "Sure!"})
	}))
	defer srv.Close()

	c := NewAIBackendClient(srv.Client(), srv.URL+"/", "")
	history := []db_models.ConversationMessage{{Role: db_models.RoleUser, Content: "hi"}}

	out, err := c.Invoke(context.Background(), "what to see?", history)
	require.NoError(t, err)
	assert.Equal(t, "Sure!", out)
	assert.Equal(t, "what to see?", got.Input)
	assert.Equal(t, history, got.History)
}

func TestInvoke_NilHistoryIsSentAsEmptyArray(t *testing.T) {
	var body map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"summary":"ok"}`))
	}))
	defer srv.Close()

	_, err := NewAIBackendClient(srv.Client(), srv.URL, "").Invoke(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body["history"]))
}

func TestPostJSON_NonOKIsSingleAttemptWithReason(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewAIBackendClient(srv.Client(), srv.URL, "").Invoke(context.Background(), "x", nil)
	var statusErr *BackendStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "Service Unavailable", statusErr.Reason)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEditPlan_DecodesModifications(t *testing.T) {
	var got EditPlanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/edit-plan", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{
			"success": true, "can_modify": true, "action_type": "add", "message": "done",
			"modifications": {"day": "2", "activity": "Night market", "activity_type": "shopping"}
		}`))
	}))
	defer srv.Close()

	resp, err := NewAIBackendClient(srv.Client(), srv.URL, "").EditPlan(context.Background(), EditPlanRequest{
		Command: "add night market", TripID: "t-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", got.TripID)
	assert.NotNil(t, got.ConversationHistory)
	assert.True(t, resp.CanModify)
	require.NotNil(t, resp.Modifications.Day)
	assert.Equal(t, FlexInt(2), *resp.Modifications.Day)
	assert.Equal(t, "Night market", resp.Modifications.Activity)
}

func TestGenerateTripPlan_UsesConfiguredPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plans/generate", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"trip": {"name": "Hue", "start_date": "2024-02-01"},
			"plan_data": {"daily_plans": [{"day": 1, "activities": [{"title": "Citadel", "estimated_cost": "200000"}]}],
			              "trip_info": {"currency": "VND", "travelers_count": 2},
			              "summary": {"total_estimated_cost": 200000}}
		}`))
	}))
	defer srv.Close()

	resp, err := NewAIBackendClient(srv.Client(), srv.URL, "/plans/generate").GenerateTripPlan(context.Background(), "plan hue")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.PlanData)
	require.Len(t, resp.PlanData.DailyPlans, 1)
	assert.Equal(t, "VND", resp.PlanData.TripInfo.Currency)
	assert.Equal(t, "Hue", resp.Trip.Name)
}

func TestPostJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewAIBackendClient(srv.Client(), srv.URL, "").Invoke(context.Background(), "x", nil)
	require.Error(t, err)
	var statusErr *BackendStatusError
	assert.False(t, errors.As(err, &statusErr))
}
