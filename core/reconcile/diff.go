package reconcile

// Diff is the before/after projection reported for a reconciliation.
// Empty sides are omitted from the encoded report.
type Diff struct {
	Before Record `json:"before,omitempty" yaml:"before,omitempty"`
	After  Record `json:"after,omitempty" yaml:"after,omitempty"`
}

// Empty reports whether neither side carries any field.
func (d Diff) Empty() bool {
	return len(d.Before) == 0 && len(d.After) == 0
}

// ProjectDiff returns a new record holding only the allow-listed fields of r.
// Fields missing from r are projected as nil so both sides share a key set.
func ProjectDiff(r Record, allow []string) Record {
	out := make(Record, len(allow))
	for _, field := range allow {
		out[field] = r[field]
	}
	return out
}

// HasChanged reports whether any field of before differs from the same field of after.
// Only the keys of before are checked; keys present only in after are ignored.
func HasChanged(before, after Record) bool {
	for k, v := range before {
		if Canonical(v) != Canonical(after[k]) {
			return true
		}
	}
	return false
}
