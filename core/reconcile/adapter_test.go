package reconcile

import "errors"

var errStubInvalid = errors.New("stub: invalid declaration")

// stubAdapter flattens entries as-is, resolving selection groups to their selected key.
type stubAdapter struct {
	endpoint Endpoint
	invalid  bool
}

func (s *stubAdapter) Name() string { return "stub_rule" }

func (s *stubAdapter) Endpoint() Endpoint { return s.endpoint }

func (s *stubAdapter) Normalize(entry Entry) Record {
	r := Record{}
	for _, k := range entry.Data.Keys() {
		v, _ := entry.Data.Get(k)
		if IsSelectionGroup(v) {
			opt, ok := Selected(v)
			if ok {
				r[k] = opt.Key
			} else {
				r[k] = nil
			}
			continue
		}
		r[k] = v
	}
	if entry.ID != "" {
		r["uuid"] = entry.ID
	}
	return r
}

func (s *stubAdapter) Desired(params map[string]any) (Record, error) {
	return Record(params), nil
}

func (s *stubAdapter) Validate(Record) error {
	if s.invalid {
		return errStubInvalid
	}
	return nil
}

func (s *stubAdapter) DefaultMatchFields() []string {
	return []string{"sequence", "description"}
}

func (s *stubAdapter) ChangeFields() []string {
	return []string{"sequence", "action", "interface", "description"}
}

func (s *stubAdapter) DiffFields() []string {
	return s.ChangeFields()
}

func (s *stubAdapter) Payload(desired Record, _ *Snapshot) (map[string]any, error) {
	out := make(map[string]any, len(desired))
	for k, v := range desired {
		out[k] = Canonical(v)
	}
	return out, nil
}

var testEndpoint = Endpoint{
	Module:           "firewall",
	Controller:       "filter",
	Search:           "get",
	KeyPath:          "filter.rules.rule",
	Add:              "addRule",
	Set:              "setRule",
	Delete:           "delRule",
	ReloadController: "filter",
	ReloadCommand:    "apply",
}
