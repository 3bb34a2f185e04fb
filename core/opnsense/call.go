package opnsense

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Call addresses a single API endpoint.
type Call struct {
	Module     string
	Controller string
	Command    string
	// Params are appended to the path, e.g. the uuid of the object to update.
	Params []string
	// Data is JSON encoded as the request body of mutating calls.
	Data any
}

// Path returns the endpoint path relative to /api/.
func (c Call) Path() string {
	parts := []string{c.Module, c.Controller, c.Command}
	for _, p := range c.Params {
		parts = append(parts, url.PathEscape(p))
	}
	return strings.Join(parts, "/")
}

// String implements fmt.Stringer.
func (c Call) String() string {
	return c.Path()
}

// Response is a decoded-later API response.
type Response struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Body is the raw JSON body.
	Body []byte
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// MutationResult is the body the appliance returns for add/set/del/reload commands.
type MutationResult struct {
	Result      string         `json:"result"`
	Status      string         `json:"status"`
	UUID        string         `json:"uuid"`
	Validations map[string]any `json:"validations"`
}

// Failed reports whether the appliance rejected the mutation.
func (m MutationResult) Failed() bool {
	return strings.EqualFold(m.Result, "failed") || len(m.Validations) > 0
}
