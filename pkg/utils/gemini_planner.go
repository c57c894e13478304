package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiTripPlanner generates plans directly with Gemini instead of going
// through the remote generation endpoint.
type GeminiTripPlanner struct {
	client *genai.Client
	model  string
}

func NewGeminiTripPlanner(apiKey, model string) (*GeminiTripPlanner, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTripPlanner{client: client, model: model}, nil
}

func (g *GeminiTripPlanner) GenerateTripPlan(ctx context.Context, prompt string) (*TripGenerationResponse, error) {
	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.5)
	m.SetTopK(20)

	resp, err := m.GenerateContent(ctx, genai.Text(buildPlannerPrompt(prompt)))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("no content generated by Gemini")
	}

	var content string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			content += string(txt)
		}
	}
	return decodeGeneratedPlan(content)
}

func (g *GeminiTripPlanner) Close() error {
	return g.client.Close()
}
