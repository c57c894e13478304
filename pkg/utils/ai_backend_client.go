package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/response_models"
	"moneyflow/pkg/logger"
)

// AIBackendInterface is the planning backend as seen by the assistant. All
// calls are single attempts; callers decide how failures surface.
type AIBackendInterface interface {
	Invoke(ctx context.Context, input string, history []db_models.ConversationMessage) (string, error)
	EditPlan(ctx context.Context, req EditPlanRequest) (*EditPlanResponse, error)
}

// TripPlanGenerator produces a structured plan from an enhanced prompt.
type TripPlanGenerator interface {
	GenerateTripPlan(ctx context.Context, prompt string) (*TripGenerationResponse, error)
}

type InvokeRequest struct {
	Input   string                          `json:"input"`
	History []db_models.ConversationMessage `json:"history"`
}

type InvokeResponse struct {
	Summary string `json:"summary"`
}

type EditPlanRequest struct {
	Command             string                          `json:"command"`
	TripID              string                          `json:"trip_id"`
	ConversationHistory []db_models.ConversationMessage `json:"conversation_history"`
}

type EditPlanModifications struct {
	Day          *FlexInt `json:"day,omitempty"`
	Activity     string   `json:"activity,omitempty"`
	ActivityType string   `json:"activity_type,omitempty"`
}

type EditPlanResponse struct {
	Success       bool                  `json:"success"`
	CanModify     bool                  `json:"can_modify"`
	ActionType    string                `json:"action_type"`
	Message       string                `json:"message"`
	Modifications EditPlanModifications `json:"modifications"`
}

type TripGenerationRequest struct {
	Prompt string `json:"prompt"`
}

type TripGenerationResponse struct {
	Success  bool                               `json:"success"`
	Trip     *response_models.GeneratedTrip     `json:"trip,omitempty"`
	PlanData *response_models.GeneratedPlanData `json:"plan_data,omitempty"`
	Message  string                             `json:"message,omitempty"`
}

// BackendStatusError is returned for any non-200 answer. Reason mirrors the
// HTTP reason phrase, which is what the chat shows to the user.
type BackendStatusError struct {
	StatusCode int
	Reason     string
}

func (e *BackendStatusError) Error() string {
	return fmt.Sprintf("ai backend returned %d %s", e.StatusCode, e.Reason)
}

type AIBackendClient struct {
	HTTP         *http.Client
	BaseURL      string
	GeneratePath string
}

func NewAIBackendClient(httpClient *http.Client, baseURL, generatePath string) *AIBackendClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if generatePath == "" {
		generatePath = "/generate-trip"
	}
	return &AIBackendClient{
		HTTP:         httpClient,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		GeneratePath: generatePath,
	}
}

func (c *AIBackendClient) Invoke(ctx context.Context, input string, history []db_models.ConversationMessage) (string, error) {
	if history == nil {
		history = []db_models.ConversationMessage{}
	}
	var out InvokeResponse
	if err := c.postJSON(ctx, "/invoke", InvokeRequest{Input: input, History: history}, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

func (c *AIBackendClient) EditPlan(ctx context.Context, req EditPlanRequest) (*EditPlanResponse, error) {
	if req.ConversationHistory == nil {
		req.ConversationHistory = []db_models.ConversationMessage{}
	}
	var out EditPlanResponse
	if err := c.postJSON(ctx, "/edit-plan", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AIBackendClient) GenerateTripPlan(ctx context.Context, prompt string) (*TripGenerationResponse, error) {
	var out TripGenerationResponse
	if err := c.postJSON(ctx, c.GeneratePath, TripGenerationRequest{Prompt: prompt}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AIBackendClient) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("ai backend %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		logger.Get().Warn("ai backend non-200",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &BackendStatusError{StatusCode: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
