package reconcile

import "opnsense-manager/core/validate"

// FindMatch returns the first existing object whose normalized values equal the
// desired values at every match field. Candidates are normalized lazily in input
// order and the scan stops at the first match. Neither input is modified.
//
// When several objects match, the first one wins and the ambiguity is not reported.
func FindMatch(c Collection, n Normalizer, desired Record, fields []string) (Record, bool) {
	for _, entry := range c {
		existing := n.Normalize(entry)
		if matches(existing, desired, fields) {
			return existing, true
		}
	}
	return nil, false
}

// CountMatches returns how many objects satisfy the match fields.
func CountMatches(c Collection, n Normalizer, desired Record, fields []string) int {
	count := 0
	for _, entry := range c {
		if matches(n.Normalize(entry), desired, fields) {
			count++
		}
	}
	return count
}

func matches(existing, desired Record, fields []string) bool {
	for _, field := range fields {
		if Canonical(existing[field]) != Canonical(desired[field]) {
			return false
		}
	}
	return true
}

// CheckRequest rejects requests that cannot be matched: the state must be valid and
// every match field must be declared with a non-nil value.
func CheckRequest(req Request) error {
	b := &validate.Builder{}
	if req.State != StatePresent && req.State != StateAbsent {
		b.AddErrorf("invalid state '%s'", req.State)
	}
	if len(req.MatchFields) == 0 {
		b.AddError("at least one match field is required")
	}
	for _, field := range req.MatchFields {
		if v, ok := req.Desired[field]; !ok || v == nil {
			b.AddErrorf("match field '%s' must be set", field)
		}
	}
	return b.Build()
}

// Decide matches the declaration against the existing objects and derives the
// decision and diff:
//
//	match  + present -> Update or NoChange, depending on HasChanged over ChangeFields
//	none   + present -> Create, after = desired projection
//	match  + absent  -> Delete, before = existing projection
//	none   + absent  -> NoChange
//
// NoChange always carries an empty diff.
func Decide(c Collection, a Adapter, req Request) *Result {
	res := &Result{ObjectType: a.Name(), Decision: NoChange, Desired: req.Desired}

	existing, found := FindMatch(c, a, req.Desired, req.MatchFields)
	res.Existing = existing

	switch {
	case req.State == StateAbsent && found:
		res.Decision = Delete
		res.Diff.Before = ProjectDiff(existing, a.DiffFields())
	case req.State == StateAbsent:
		// nothing to remove
	case !found:
		res.Decision = Create
		res.Diff.After = ProjectDiff(req.Desired, a.DiffFields())
	default:
		before := ProjectDiff(existing, a.ChangeFields())
		after := ProjectDiff(req.Desired, a.ChangeFields())
		if HasChanged(before, after) {
			res.Decision = Update
			res.Diff.Before = ProjectDiff(existing, a.DiffFields())
			res.Diff.After = ProjectDiff(req.Desired, a.DiffFields())
		}
	}

	res.Changed = res.Decision != NoChange
	return res
}
