package reconcile

import (
	"errors"
	"testing"

	"opnsense-manager/core/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRules = `{
	"u1": {"sequence": "10", "action": "pass", "interface": {"lan": {"value": "LAN", "selected": 1}}, "description": "web"},
	"u2": {"sequence": "10", "action": "pass", "interface": {"lan": {"value": "LAN", "selected": 1}}, "description": "web"},
	"u3": {"sequence": "20", "action": "block", "interface": {"lan": {"value": "LAN", "selected": 1}}, "description": "dns"}
}`

func ingest(t *testing.T, body string) Collection {
	t.Helper()
	coll, err := Ingest(mustParse(t, body))
	require.NoError(t, err)
	return coll
}

func TestFindMatch_FirstWins(t *testing.T) {
	coll := ingest(t, twoRules)
	n := &stubAdapter{}

	got, ok := FindMatch(coll, n, Record{"sequence": 10, "description": "web"}, []string{"sequence", "description"})
	require.True(t, ok)
	assert.Equal(t, "u1", got.UUID())
	assert.Equal(t, 2, CountMatches(coll, n, Record{"sequence": 10, "description": "web"}, []string{"sequence", "description"}))
}

func TestFindMatch_NoMatch(t *testing.T) {
	coll := ingest(t, twoRules)

	_, ok := FindMatch(coll, &stubAdapter{}, Record{"sequence": 30}, []string{"sequence"})
	assert.False(t, ok)

	_, ok = FindMatch(Collection{}, &stubAdapter{}, Record{"sequence": 30}, []string{"sequence"})
	assert.False(t, ok)
}

func TestFindMatch_DoesNotModifyInputs(t *testing.T) {
	coll := ingest(t, twoRules)
	desired := Record{"sequence": 20, "description": "dns"}

	_, ok := FindMatch(coll, &stubAdapter{}, desired, []string{"sequence", "description"})
	require.True(t, ok)

	assert.Equal(t, Record{"sequence": 20, "description": "dns"}, desired)
	seq, _ := coll[2].Data.Get("sequence")
	assert.Equal(t, "20", seq)
	_, hasUUID := coll[2].Data.Get("uuid")
	assert.False(t, hasUUID)
}

func TestCheckRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{"Valid", Request{Desired: Record{"sequence": 1}, MatchFields: []string{"sequence"}, State: StatePresent}, ""},
		{"MissingMatchField", Request{Desired: Record{"sequence": 1}, MatchFields: []string{"sequence", "description"}, State: StatePresent}, "description"},
		{"NilMatchField", Request{Desired: Record{"sequence": nil}, MatchFields: []string{"sequence"}, State: StateAbsent}, "sequence"},
		{"NoMatchFields", Request{Desired: Record{"sequence": 1}, State: StatePresent}, "at least one"},
		{"InvalidState", Request{Desired: Record{"sequence": 1}, MatchFields: []string{"sequence"}, State: "gone"}, "gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRequest(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, validate.ErrValidationFailed))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecide_Create(t *testing.T) {
	desired := Record{"sequence": 1, "action": "pass", "interface": "lan", "description": "new", "source_net": "any"}

	res := Decide(Collection{}, &stubAdapter{}, Request{Desired: desired, MatchFields: []string{"sequence", "description"}, State: StatePresent})

	assert.Equal(t, Create, res.Decision)
	assert.True(t, res.Changed)
	assert.Empty(t, res.Diff.Before)
	assert.Equal(t, Record{"sequence": 1, "action": "pass", "interface": "lan", "description": "new"}, res.Diff.After)
}

func TestDecide_NoChange(t *testing.T) {
	coll := ingest(t, twoRules)
	desired := Record{"sequence": 20, "action": "block", "interface": "lan", "description": "dns"}

	res := Decide(coll, &stubAdapter{}, Request{Desired: desired, MatchFields: []string{"sequence", "description"}, State: StatePresent})

	assert.Equal(t, NoChange, res.Decision)
	assert.False(t, res.Changed)
	assert.True(t, res.Diff.Empty())
	assert.Equal(t, "u3", res.Existing.UUID())
}

func TestDecide_Delete(t *testing.T) {
	coll := ingest(t, twoRules)

	res := Decide(coll, &stubAdapter{}, Request{Desired: Record{"sequence": 20, "description": "dns"}, MatchFields: []string{"sequence", "description"}, State: StateAbsent})

	assert.Equal(t, Delete, res.Decision)
	assert.True(t, res.Changed)
	assert.Empty(t, res.Diff.After)
	assert.Equal(t, Record{"sequence": "20", "action": "block", "interface": "lan", "description": "dns"}, res.Diff.Before)
}

func TestDecide_AbsentAndMissing(t *testing.T) {
	coll := ingest(t, twoRules)

	res := Decide(coll, &stubAdapter{}, Request{Desired: Record{"sequence": 99}, MatchFields: []string{"sequence"}, State: StateAbsent})

	assert.Equal(t, NoChange, res.Decision)
	assert.False(t, res.Changed)
	assert.True(t, res.Diff.Empty())
}

func TestDecide_Update(t *testing.T) {
	coll := ingest(t, twoRules)
	desired := Record{"sequence": 20, "action": "block", "interface": "lan", "description": "dns resolver"}

	res := Decide(coll, &stubAdapter{}, Request{Desired: desired, MatchFields: []string{"sequence"}, State: StatePresent})

	assert.Equal(t, Update, res.Decision)
	assert.True(t, res.Changed)
	assert.Equal(t, "dns", res.Diff.Before["description"])
	assert.Equal(t, "dns resolver", res.Diff.After["description"])
	assert.ElementsMatch(t, []string{"sequence", "action", "interface", "description"}, keysOf(res.Diff.After))
}

func TestDecide_Idempotent(t *testing.T) {
	desired := Record{"sequence": 5, "action": "pass", "interface": "lan", "description": "ssh"}
	req := Request{Desired: desired, MatchFields: []string{"sequence", "description"}, State: StatePresent}

	first := Decide(Collection{}, &stubAdapter{}, req)
	require.Equal(t, Create, first.Decision)

	// simulate the appliance after the create
	body := `{"new": {"sequence": "5", "action": "pass", "interface": {"lan": {"value": "LAN", "selected": 1}}, "description": "ssh"}}`
	second := Decide(ingest(t, body), &stubAdapter{}, req)
	assert.Equal(t, NoChange, second.Decision)
}

func keysOf(r Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	return keys
}
