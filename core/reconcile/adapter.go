package reconcile

import "strings"

// Endpoint describes where an object type lives in the appliance API.
type Endpoint struct {
	// Module and Controller address the object type, e.g. firewall/filter.
	Module     string
	Controller string

	// Search is the command returning every existing object.
	Search string
	// KeyPath locates the collection inside the search response, e.g. "filter.rules.rule".
	KeyPath string

	// Add, Set and Delete are the mutation commands.
	Add    string
	Set    string
	Delete string

	// ReloadController and ReloadCommand apply pending changes after a mutation.
	// An empty ReloadCommand disables the reload.
	ReloadController string
	ReloadCommand    string
}

// PayloadKey is the wrapper key the API expects around a mutation body,
// the last segment of KeyPath ("rule" for "filter.rules.rule").
func (e Endpoint) PayloadKey() string {
	if i := strings.LastIndex(e.KeyPath, "."); i >= 0 {
		return e.KeyPath[i+1:]
	}
	return e.KeyPath
}

// Normalizer flattens a raw existing object into a Record comparable to a declaration.
// Implementations are pure and permissive: unexpected encodings resolve to zero values
// instead of errors.
type Normalizer interface {
	Normalize(entry Entry) Record
}

// Lister is the minimum an object type implements: it can be searched and normalized.
type Lister interface {
	Normalizer

	// Name returns the unique name of this object type (e.g., "firewall_rule").
	Name() string

	// Endpoint returns the API location of this object type.
	Endpoint() Endpoint
}

// Adapter defines the object-type specific pieces of a reconciliation.
// Each adapter is an immutable table constructed once at startup.
type Adapter interface {
	Lister

	// Desired resolves aliases, applies defaults and types the user declaration.
	Desired(params map[string]any) (Record, error)

	// Validate checks a present declaration before anything is fetched or mutated.
	Validate(desired Record) error

	// DefaultMatchFields are used when the declaration names none.
	DefaultMatchFields() []string

	// ChangeFields are compared to decide between Update and NoChange.
	ChangeFields() []string

	// DiffFields are the fields surfaced in the reported diff.
	DiffFields() []string

	// Payload encodes a declaration into the body of an add or set call.
	// The snapshot gives access to the search response for resolving references.
	Payload(desired Record, snapshot *Snapshot) (map[string]any, error)
}

// ReferenceResolver is implemented by object types whose declarations refer to
// other objects of the same search response. It runs after the fetch and before
// the decision, so check mode reports broken references too. The returned record
// replaces the declaration and must spell every reference the way Normalize reads
// it back; the input record is not modified.
type ReferenceResolver interface {
	ResolveReferences(desired Record, snapshot *Snapshot) (Record, error)
}
