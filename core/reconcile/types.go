package reconcile

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownObjectType is returned when no adapter is registered under a name.
	ErrUnknownObjectType = errors.New("unknown object type")
	// ErrNotReconcilable is returned for list-only object types.
	ErrNotReconcilable = errors.New("object type does not support reconciliation")
)

// Decision is the mutation a reconciliation requires.
type Decision string

const (
	// NoChange means the appliance already matches the declaration.
	NoChange Decision = "no_change"
	// Create means no matching object exists and one should.
	Create Decision = "create"
	// Update means a matching object exists with different tracked fields.
	Update Decision = "update"
	// Delete means a matching object exists and should not.
	Delete Decision = "delete"
)

// Mutates reports whether the decision requires an API mutation.
func (d Decision) Mutates() bool {
	return d == Create || d == Update || d == Delete
}

// State is the declared existence of an object.
type State string

const (
	// StatePresent declares the object should exist.
	StatePresent State = "present"
	// StateAbsent declares the object should not exist.
	StateAbsent State = "absent"
)

// ParseState parses a declared state. An empty string means present.
func ParseState(s string) (State, error) {
	switch State(s) {
	case "", StatePresent:
		return StatePresent, nil
	case StateAbsent:
		return StateAbsent, nil
	}
	return "", fmt.Errorf("invalid state %q (expected present or absent)", s)
}

// Request is one declared object to reconcile.
type Request struct {
	// Desired is the alias-resolved, typed declaration.
	Desired Record
	// MatchFields correlate the declaration with an existing object.
	MatchFields []string
	// State is the declared existence.
	State State
}

// Result is the outcome of planning a reconciliation.
type Result struct {
	// ObjectType is the adapter name.
	ObjectType string `json:"object_type" yaml:"object_type"`
	// Decision is the required mutation.
	Decision Decision `json:"decision" yaml:"decision"`
	// Changed is true for every decision other than NoChange.
	Changed bool `json:"changed" yaml:"changed"`
	// Diff is the before/after projection.
	Diff Diff `json:"diff" yaml:"diff"`
	// Existing is the matched, normalized object. Nil when nothing matched.
	Existing Record `json:"-" yaml:"-"`
	// Desired is the declaration the result was planned for.
	Desired Record `json:"-" yaml:"-"`

	snapshot *Snapshot
}

// Options controls how a planned result is applied.
type Options struct {
	// Check prevents execution of any mutations if true.
	Check bool
}

// Snapshot is the fetched state of one object type.
type Snapshot struct {
	// Body is the full decoded search response.
	Body *Object
	// Collection holds the existing objects found under the endpoint's key path.
	Collection Collection
}

// Outcome is reported to observers after every reconciliation attempt.
type Outcome struct {
	ObjectType string
	// Result is nil when planning failed.
	Result   *Result
	Check    bool
	Applied  bool
	Err      error
	Duration time.Duration
}

// Config holds reconciliation engine settings.
type Config struct {
	// CacheTTLSeconds is how long search responses are reused. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// CacheTTL returns the configured TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
