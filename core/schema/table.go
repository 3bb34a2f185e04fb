package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/utils"
	"opnsense-manager/core/validate"
)

// Table is the ordered field list of one object type.
type Table struct {
	fields  []Field
	byName  map[string]int
	aliases map[string]string
}

// NewTable builds a table. It panics on duplicate names or aliases, which are
// programming errors in the static tables.
func NewTable(fields ...Field) *Table {
	t := &Table{
		fields:  fields,
		byName:  make(map[string]int, len(fields)),
		aliases: make(map[string]string),
	}
	for i, f := range fields {
		if _, dup := t.byName[f.Name]; dup {
			panic(fmt.Sprintf("schema: duplicate field %q", f.Name))
		}
		t.byName[f.Name] = i
	}
	for _, f := range fields {
		for _, alias := range f.Aliases {
			if _, dup := t.byName[alias]; dup {
				panic(fmt.Sprintf("schema: alias %q shadows a field", alias))
			}
			if _, dup := t.aliases[alias]; dup {
				panic(fmt.Sprintf("schema: duplicate alias %q", alias))
			}
			t.aliases[alias] = f.Name
		}
	}
	return t
}

// Field returns the field registered under name or one of its aliases.
func (t *Table) Field(name string) (Field, bool) {
	if canonical, ok := t.aliases[name]; ok {
		name = canonical
	}
	i, ok := t.byName[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// Names returns every field name in table order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.fields))
	for _, f := range t.fields {
		names = append(names, f.Name)
	}
	return names
}

// Reported returns the field names that may appear in a diff.
func (t *Table) Reported() []string {
	names := make([]string, 0, len(t.fields))
	for _, f := range t.fields {
		if !f.Secret {
			names = append(names, f.Name)
		}
	}
	return names
}

// Desired resolves aliases, types every declared value and applies defaults.
// Unknown fields and values that cannot be typed are reported together.
func (t *Table) Desired(params map[string]any) (reconcile.Record, error) {
	b := &validate.Builder{}
	out := make(reconcile.Record, len(t.fields))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		f, ok := t.Field(key)
		if !ok {
			b.AddErrorf("unsupported field '%s'", key)
			continue
		}
		if _, dup := out[f.Name]; dup {
			b.AddErrorf("field '%s' is set more than once (via '%s')", f.Name, key)
			continue
		}
		v, err := typed(f, params[key])
		if err != nil {
			b.AddInvalid(f.Name, params[key])
			continue
		}
		out[f.Name] = v
	}

	for _, f := range t.fields {
		if _, set := out[f.Name]; !set {
			out[f.Name] = f.Default
		}
	}

	if err := b.Build(); err != nil {
		return nil, err
	}
	return out, nil
}

func typed(f Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch f.Kind {
	case Bool:
		return utils.ToBool(v)
	case Int:
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return utils.ToInt(v)
	case List:
		return utils.ToStringSlice(v)
	}
	return utils.ToString(v), nil
}

// Check reports missing required fields, values outside their choices and
// integers outside their bounds.
func (t *Table) Check(b *validate.Builder, desired reconcile.Record) {
	for _, f := range t.fields {
		v := desired[f.Name]
		if f.Required && (v == nil || utils.ToString(v) == "") {
			b.AddErrorf("field '%s' is required", f.Name)
			continue
		}
		if len(f.Choices) > 0 {
			b.OneOf(f.Name, v, f.Choices...)
		}
		if f.Bounded {
			b.IntRange(f.Name, v, f.Min, f.Max)
		}
	}
}

// Normalize flattens a raw entry into a Record keyed by field name.
// The entry's uuid is attached under "uuid".
func (t *Table) Normalize(entry reconcile.Entry) reconcile.Record {
	out := make(reconcile.Record, len(t.fields)+1)
	for _, f := range t.fields {
		raw, _ := entry.Data.Get(f.WireName())
		out[f.Name] = normalizeValue(f, raw)
	}
	if entry.ID != "" {
		out["uuid"] = entry.ID
	}
	return out
}

func normalizeValue(f Field, raw any) any {
	switch f.Kind {
	case Bool:
		return reconcile.Truthy(raw) != f.Invert
	case Int:
		if reconcile.IsSelectionGroup(raw) {
			opt, ok := reconcile.Selected(raw)
			if !ok {
				return nil
			}
			raw = opt.Key
		}
		if raw == nil || utils.ToString(raw) == "" {
			return nil
		}
		if n, err := utils.ToInt(raw); err == nil {
			return n
		}
		return utils.ToString(raw)
	case Select:
		if reconcile.IsSelectionGroup(raw) {
			if opt, ok := reconcile.Selected(raw); ok {
				return opt.Key
			}
			return nil
		}
	case List:
		if reconcile.IsSelectionGroup(raw) {
			opts := reconcile.SelectedAll(raw)
			keys := make([]string, 0, len(opts))
			for _, o := range opts {
				keys = append(keys, o.Key)
			}
			return keys
		}
		items, err := utils.ToStringSlice(raw)
		if err != nil {
			return []string{}
		}
		return items
	}
	if raw == nil {
		return nil
	}
	if _, ok := raw.(*reconcile.Object); ok {
		return nil
	}
	return utils.ToString(raw)
}

// Payload encodes a record into wire names and wire encodings.
// Fields not in the table, such as "uuid", are dropped.
func (t *Table) Payload(desired reconcile.Record) map[string]any {
	out := make(map[string]any, len(t.fields))
	for _, f := range t.fields {
		v, ok := desired[f.Name]
		if !ok {
			continue
		}
		out[f.WireName()] = encode(f, v)
	}
	return out
}

func encode(f Field, v any) string {
	switch f.Kind {
	case Bool:
		on := reconcile.Truthy(v)
		if b, err := utils.ToBool(v); err == nil {
			on = b
		}
		if on != f.Invert {
			return "1"
		}
		return "0"
	case Int:
		if v == nil {
			return ""
		}
		if n, err := utils.ToInt(v); err == nil {
			return strconv.Itoa(n)
		}
	case List:
		items, err := utils.ToStringSlice(v)
		if err == nil {
			return strings.Join(items, ",")
		}
	}
	return utils.ToString(v)
}
