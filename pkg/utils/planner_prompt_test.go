package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponse(t *testing.T) {
	raw := "Here is your plan:\n```json\n{\"a\": {\"b\": \"}\"}}\n```\nEnjoy!"
	assert.Equal(t, `{"a": {"b": "}"}}`, cleanJSONResponse(raw))

	assert.Equal(t, "no json here", cleanJSONResponse("no json here"))
}

func TestDecodeGeneratedPlan(t *testing.T) {
	out, err := decodeGeneratedPlan("```json\n" + `{
		"trip": {"name": "Da Lat", "destination": "Đà Lạt"},
		"plan_data": {"daily_plans": [{"day": 1, "activities": [{"title": "Flower garden", "start_time": "08:30"}]}]}
	}` + "\n```")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Da Lat", out.Trip.Name)
	assert.Equal(t, "08:30", out.PlanData.DailyPlans[0].Activities[0].StartTime)

	out, err = decodeGeneratedPlan(`{"trip": {"name": "Empty"}}`)
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Message)

	_, err = decodeGeneratedPlan("I cannot help with that")
	assert.EqualError(t, err, "model returned invalid json")
}

func TestBuildPlannerPrompt(t *testing.T) {
	p := buildPlannerPrompt("3 days in Hue")
	assert.Contains(t, p, "3 days in Hue")
	assert.Contains(t, p, `"daily_plans"`)
}
