package request_models

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// FlexibleInt accepts 3, 3.0 and "3" alike; HTML forms post numbers as strings.
type FlexibleInt int

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	if !ok || v != math.Trunc(v) {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(0)}
	}
	*f = FlexibleInt(v)
	return nil
}

// FlexibleFloat accepts 1500, 1500.5 and "1500.5".
type FlexibleFloat float64

func (f *FlexibleFloat) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	if !ok {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(0.0)}
	}
	*f = FlexibleFloat(v)
	return nil
}

func parseNumber(data []byte) (float64, bool) {
	if bytes.Equal(data, []byte("null")) {
		return 0, true
	}
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			return 0, true
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
