package utils

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAITripPlanner struct {
	client *openai.Client
	model  string
}

func NewOpenAITripPlanner(apiKey, model string) *OpenAITripPlanner {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITripPlanner{client: openai.NewClient(apiKey), model: model}
}

func (o *OpenAITripPlanner) GenerateTripPlan(ctx context.Context, prompt string) (*TripGenerationResponse, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You return travel itineraries as strict JSON."},
			{Role: openai.ChatMessageRoleUser, Content: buildPlannerPrompt(prompt)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices returned by OpenAI")
	}
	return decodeGeneratedPlan(resp.Choices[0].Message.Content)
}
