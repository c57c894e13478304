package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const plannerSchema = `
{
  "trip": {"name": "string", "destination": "string", "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD", "budget": 0, "currency": "VND"},
  "plan_data": {
    "daily_plans": [
      {
        "day": 1,
        "activities": [
          {"title": "string", "description": "string", "activity_type": "restaurant|lodging|flight|tour|activity",
           "start_time": "09:00", "estimated_cost": 0, "location": "string", "address": "string", "coordinates": "lat,lng"}
        ]
      }
    ],
    "trip_info": {"currency": "VND", "travelers_count": 1},
    "summary": {"total_estimated_cost": 0}
  }
}`

func buildPlannerPrompt(userPrompt string) string {
	return fmt.Sprintf(`
You are a travel planner. Build a day-by-day itinerary for the request below and return **JSON only**
matching this schema exactly (same keys, no markdown, no comments):
%s

Rules:
- "day" starts at 1 with no gaps.
- start_time is HH:MM (24h), 2-6 activities per day, no overlaps.
- estimated_cost is a number in trip_info.currency.

Request:
%s
`, plannerSchema, userPrompt)
}

// decodeGeneratedPlan turns raw model output into the same shape the
// remote generation endpoint returns.
func decodeGeneratedPlan(content string) (*TripGenerationResponse, error) {
	content = cleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return nil, errors.New("model returned invalid json")
	}
	var out TripGenerationResponse
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("decode generated plan: %w", err)
	}
	out.Success = out.PlanData != nil && len(out.PlanData.DailyPlans) > 0
	if !out.Success && out.Message == "" {
		out.Message = "the model did not return any daily plans"
	}
	return &out, nil
}

// cleanJSONResponse removes markdown fences and prose around the first JSON
// object in a model reply.
func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	if start == -1 {
		return response
	}
	if end := findMatchingBrace(response, start); end != -1 {
		response = response[start : end+1]
	}
	return strings.TrimSpace(response)
}

func findMatchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
