package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ToInt converts various types to int.
// It handles integer and float types, json.Number, strings and byte slices.
// Strings are parsed as plain decimal: no base prefixes, no fractional part.
func ToInt(val any) (int, error) {
	switch v := val.(type) {
	case string:
		return parseDecimal(v)
	case []byte:
		return parseDecimal(string(v))
	default:
		return cast.ToIntE(v)
	}
}

func parseDecimal(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("unable to parse %q as a decimal integer", s)
	}
	return n, nil
}

// ToString converts various types to string. A nil value becomes the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	}
	s, err := cast.ToStringE(val)
	if err != nil {
		return fmt.Sprintf("%v", val)
	}
	return s
}

// ToBool converts various types to bool.
// It accepts bool, numeric types and the strings understood by strconv.ParseBool
// plus "yes"/"no" as written in YAML 1.1 documents.
func ToBool(val any) (bool, error) {
	if s, ok := val.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "on":
			return true, nil
		case "no", "off", "":
			return false, nil
		}
	}
	return cast.ToBoolE(val)
}

// ToStringSlice converts a list-like value to a slice of strings.
// A single string is split on commas, matching how the appliance encodes lists on the wire.
func ToStringSlice(val any) ([]string, error) {
	switch v := val.(type) {
	case nil:
		return []string{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}, nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, ToString(item))
		}
		return out, nil
	default:
		return cast.ToStringSliceE(val)
	}
}
