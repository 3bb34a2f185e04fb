package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject_PreservesKeyOrder(t *testing.T) {
	obj, err := ParseObject([]byte(`{"zeta": 1, "alpha": {"b": "x", "a": "y"}, "mid": [1, "2"]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	nested, ok := obj.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, nested.(*Object).Keys())

	n, _ := obj.Get("zeta")
	assert.Equal(t, json.Number("1"), n)

	list, _ := obj.Get("mid")
	assert.Equal(t, []any{json.Number("1"), "2"}, list)
}

func TestParseObject_RejectsNonObject(t *testing.T) {
	_, err := ParseObject([]byte(`[1, 2]`))
	assert.Error(t, err)

	_, err = ParseObject([]byte(`{"a": `))
	assert.Error(t, err)
}

func TestObject_Lookup(t *testing.T) {
	obj, err := ParseObject([]byte(`{"filter": {"rules": {"rule": {"u1": {"sequence": "1"}}}}}`))
	require.NoError(t, err)

	rules, ok := obj.Lookup("filter.rules.rule")
	require.True(t, ok)
	assert.Equal(t, []string{"u1"}, rules.(*Object).Keys())

	_, ok = obj.Lookup("filter.missing.rule")
	assert.False(t, ok)

	_, ok = obj.Lookup("filter.rules.rule.u1.sequence.deeper")
	assert.False(t, ok)
}

func TestObject_MarshalJSONKeepsOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", "1")
	obj.Set("a", NewObject())
	obj.Set("b", "2")

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"2","a":{}}`, string(out))
}
