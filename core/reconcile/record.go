package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Record is a flat mapping from field name to resolved value. It is used both for
// the desired configuration and for normalized existing objects.
type Record map[string]any

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// UUID returns the identifier attached by the normalizer, if any.
func (r Record) UUID() string {
	id, _ := r["uuid"].(string)
	return id
}

// Truthy reports whether v is one of the appliance's "on" encodings: 1, "1" or true.
// Every other value, including absent ones, is false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "1"
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 1
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		f, err := cast.ToFloat64E(t)
		return err == nil && f == 1
	}
	return false
}

// Canonical renders v as the string used for match and change comparison.
// This coercion absorbs the type mismatch between declared values and API
// values (1 vs "1"); it is deliberately only used by FindMatch and HasChanged.
func Canonical(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, Canonical(item))
		}
		return strings.Join(parts, ",")
	case json.Number:
		return t.String()
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}

// Option is one member of a selection group.
type Option struct {
	// Key is the value submitted back to the API.
	Key string
	// Value is the human readable label, if the API provided one.
	Value string
}

// Label returns the option's display value, falling back to its key.
func (o Option) Label() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Key
}

// Selected scans a selection group ({key: {"selected": 0|1, "value": ...}}) in
// document order and returns the first selected member.
func Selected(group any) (Option, bool) {
	obj, ok := group.(*Object)
	if !ok {
		return Option{}, false
	}
	for _, key := range obj.Keys() {
		if opt, ok := selectedOption(obj, key); ok {
			return opt, true
		}
	}
	return Option{}, false
}

// SelectedAll returns every selected member of a multi-select group in document order.
func SelectedAll(group any) []Option {
	obj, ok := group.(*Object)
	if !ok {
		return nil
	}
	var opts []Option
	for _, key := range obj.Keys() {
		if opt, ok := selectedOption(obj, key); ok {
			opts = append(opts, opt)
		}
	}
	return opts
}

// GroupOptions returns every member of a selection group, selected or not.
func GroupOptions(group any) []Option {
	obj, ok := group.(*Object)
	if !ok {
		return nil
	}
	opts := make([]Option, 0, obj.Len())
	for _, key := range obj.Keys() {
		member, _ := obj.values[key].(*Object)
		label, _ := member.Get("value")
		opts = append(opts, Option{Key: key, Value: cast.ToString(label)})
	}
	return opts
}

func selectedOption(group *Object, key string) (Option, bool) {
	member, ok := group.values[key].(*Object)
	if !ok {
		return Option{}, false
	}
	sel, _ := member.Get("selected")
	if !Truthy(sel) {
		return Option{}, false
	}
	label, _ := member.Get("value")
	return Option{Key: key, Value: cast.ToString(label)}, true
}

// IsSelectionGroup reports whether v looks like a selection group.
func IsSelectionGroup(v any) bool {
	obj, ok := v.(*Object)
	if !ok || obj.Len() == 0 {
		return false
	}
	for _, key := range obj.Keys() {
		member, ok := obj.values[key].(*Object)
		if !ok {
			return false
		}
		if _, ok := member.Get("selected"); !ok {
			return false
		}
	}
	return true
}
