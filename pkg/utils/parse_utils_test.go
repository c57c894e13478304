package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLenientFloat(t *testing.T) {
	cases := []struct {
		raw  string
		want *float64
	}{
		{`150000`, ptr(150000)},
		{`12.5`, ptr(12.5)},
		{`"1,200,000 VND"`, ptr(1200000)},
		{`"  300 "`, ptr(300)},
		{`"free"`, nil},
		{`null`, nil},
		{``, nil},
		{`{"amount": 5}`, nil},
	}
	for _, tc := range cases {
		got := ParseLenientFloat(json.RawMessage(tc.raw))
		if tc.want == nil {
			assert.Nil(t, got, tc.raw)
			continue
		}
		require.NotNil(t, got, tc.raw)
		assert.Equal(t, *tc.want, *got, tc.raw)
	}
}

func TestParseCoordinates(t *testing.T) {
	valid := []string{
		`"16.0544, 108.2022"`,
		`[16.0544, 108.2022]`,
		`["16.0544", "108.2022"]`,
		`{"lat": 16.0544, "lng": 108.2022}`,
		`{"latitude": "16.0544", "longitude": "108.2022"}`,
		`{"lat": 16.0544, "lon": 108.2022}`,
	}
	for _, raw := range valid {
		lat, lng := ParseCoordinates(json.RawMessage(raw))
		require.NotNil(t, lat, raw)
		require.NotNil(t, lng, raw)
		assert.InDelta(t, 16.0544, *lat, 1e-9, raw)
		assert.InDelta(t, 108.2022, *lng, 1e-9, raw)
	}

	invalid := []string{
		`"somewhere near the beach"`,
		`"16.05"`,
		`"95.0,10.0"`,
		`"10.0,200.0"`,
		`[1, 2, 3]`,
		`{"lat": 16.0}`,
		`true`,
		`null`,
	}
	for _, raw := range invalid {
		lat, lng := ParseCoordinates(json.RawMessage(raw))
		assert.Nil(t, lat, raw)
		assert.Nil(t, lng, raw)
	}
}

func TestFlexInt(t *testing.T) {
	var m EditPlanModifications
	require.NoError(t, json.Unmarshal([]byte(`{"day": "2"}`), &m))
	require.NotNil(t, m.Day)
	assert.Equal(t, FlexInt(2), *m.Day)

	m = EditPlanModifications{}
	require.NoError(t, json.Unmarshal([]byte(`{"day": 4}`), &m))
	assert.Equal(t, FlexInt(4), *m.Day)

	m = EditPlanModifications{}
	require.NoError(t, json.Unmarshal([]byte(`{"activity": "x"}`), &m))
	assert.Nil(t, m.Day)

	assert.Error(t, json.Unmarshal([]byte(`{"day": "second"}`), &m))
}

func ptr(v float64) *float64 { return &v }
