package utils

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^-?\d+(\.\d+)?`)

// ParseLenientFloat accepts a JSON number or a string such as "150000",
// "1,200,000 VND" or "12.5". It returns nil when nothing numeric is found.
func ParseLenientFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return parseNumericString(s)
}

func parseNumericString(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	m := leadingNumber.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseCoordinates understands "lat,lng" strings, [lat, lng] arrays and
// objects keyed lat/lng, lat/lon or latitude/longitude, with numeric or
// string values. Anything unusable, including out-of-range values, yields
// nil for both.
func ParseCoordinates(raw json.RawMessage) (lat, lng *float64) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var la, ln *float64

	var s string
	var arr []json.RawMessage
	var obj map[string]json.RawMessage
	switch {
	case json.Unmarshal(raw, &s) == nil:
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, nil
		}
		la, ln = strictFloat(parts[0]), strictFloat(parts[1])
	case json.Unmarshal(raw, &arr) == nil:
		if len(arr) != 2 {
			return nil, nil
		}
		la, ln = coordValue(arr[0]), coordValue(arr[1])
	case json.Unmarshal(raw, &obj) == nil:
		la = coordValue(firstKey(obj, "lat", "latitude"))
		ln = coordValue(firstKey(obj, "lng", "lon", "long", "longitude"))
	default:
		return nil, nil
	}

	if la == nil || ln == nil || *la < -90 || *la > 90 || *ln < -180 || *ln > 180 {
		return nil, nil
	}
	return la, ln
}

func firstKey(obj map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v
		}
	}
	return nil
}

func coordValue(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strictFloat(s)
	}
	return nil
}

func strictFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// FlexInt decodes from a JSON number or a numeric string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}
