package report

import (
	"time"

	"opnsense-manager/core/reconcile"
)

// Report is the archived document for one reconciliation.
type Report struct {
	ID         string             `json:"id"`
	ObjectType string             `json:"object_type"`
	Decision   reconcile.Decision `json:"decision,omitempty"`
	Changed    bool               `json:"changed"`
	Check      bool               `json:"check"`
	Applied    bool               `json:"applied"`
	ObjectUUID string             `json:"object_uuid,omitempty"`
	Diff       *reconcile.Diff    `json:"diff,omitempty"`
	Error      string             `json:"error,omitempty"`
	DurationMS int64              `json:"duration_ms"`
	CreatedAt  time.Time          `json:"created_at"`
}

func newReport(id string, o reconcile.Outcome, now time.Time) Report {
	r := Report{
		ID:         id,
		ObjectType: o.ObjectType,
		Check:      o.Check,
		Applied:    o.Applied,
		DurationMS: o.Duration.Milliseconds(),
		CreatedAt:  now.UTC(),
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	if res := o.Result; res != nil {
		r.Decision = res.Decision
		r.Changed = res.Changed
		r.ObjectUUID = res.Existing.UUID()
		if !res.Diff.Empty() {
			diff := res.Diff
			r.Diff = &diff
		}
	}
	return r
}
