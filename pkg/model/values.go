package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Values maps field names to their current value. Entries hold strings,
// numbers, or booleans depending on the declared field type. The orchestrator
// owns the live map; every other component receives a Clone.
type Values map[string]any

// String returns the value under name coerced to a string. Missing entries
// and nils return the empty string.
func (v Values) String(name string) string {
	raw, ok := v[name]
	if !ok || raw == nil {
		return ""
	}
	switch typed := raw.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	default:
		return fmt.Sprint(typed)
	}
}

// Number returns the value under name coerced to a float64. The second
// return reports whether a numeric reading was possible.
func (v Values) Number(name string) (float64, bool) {
	raw, ok := v[name]
	if !ok || raw == nil {
		return 0, false
	}
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

// Bool returns the value under name coerced to a boolean. Strings parse via
// strconv; unparsable strings count as true when non-empty.
func (v Values) Bool(name string) bool {
	raw, ok := v[name]
	if !ok || raw == nil {
		return false
	}
	switch typed := raw.(type) {
	case bool:
		return typed
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err == nil {
			return parsed
		}
		return strings.TrimSpace(typed) != ""
	case float64:
		return typed != 0
	case int:
		return typed != 0
	default:
		return true
	}
}

// Has reports whether name holds a non-empty value. Whitespace-only strings
// count as empty.
func (v Values) Has(name string) bool {
	raw, ok := v[name]
	if !ok || raw == nil {
		return false
	}
	if s, isString := raw.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Empty reports whether the map holds no non-empty values.
func (v Values) Empty() bool {
	for name := range v {
		if v.Has(name) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of the map. Nil maps clone to an empty map so
// callers can mutate the result safely.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for name, value := range v {
		out[name] = value
	}
	return out
}
