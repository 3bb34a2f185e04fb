package opnsense

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRequestFailed is the sentinel all *APIError values unwrap to.
var ErrRequestFailed = errors.New("api request failed")

// APIError describes a failed API call.
type APIError struct {
	Path        string
	StatusCode  int
	Message     string
	Validations map[string]any
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api call %s failed", e.Path)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Validations) > 0 {
		keys := make([]string, 0, len(e.Validations))
		for k := range e.Validations {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, e.Validations[k]))
		}
		msg += " [" + strings.Join(parts, "; ") + "]"
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return ErrRequestFailed
}
