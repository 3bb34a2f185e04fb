package reconcile

import (
	"fmt"

	"github.com/google/uuid"
)

// Entry is one existing object as returned by the appliance.
type Entry struct {
	// ID is the object's uuid, empty when the API did not supply one.
	ID string
	// Data is the raw, still verbosely encoded payload.
	Data *Object
}

// Collection is the ordered set of existing objects of one type.
type Collection []Entry

// Ingest converts the appliance's collection encoding into a Collection.
//
// The API is inconsistent: the same endpoint may return a keyed object
// (uuid -> payload) or a list. List items are either payloads carrying their own
// "uuid" member or single-member {uuid: payload} pairs whose key parses as a uuid. Both shapes are accepted
// here so nothing downstream branches on the representation.
func Ingest(raw any) (Collection, error) {
	switch v := raw.(type) {
	case nil:
		return Collection{}, nil
	case *Object:
		coll := make(Collection, 0, v.Len())
		for _, id := range v.Keys() {
			val, _ := v.Get(id)
			payload, ok := val.(*Object)
			if !ok {
				return nil, fmt.Errorf("entry %q: expected object payload, got %T", id, val)
			}
			coll = append(coll, Entry{ID: id, Data: payload})
		}
		return coll, nil
	case []any:
		coll := make(Collection, 0, len(v))
		for i, item := range v {
			obj, ok := item.(*Object)
			if !ok {
				return nil, fmt.Errorf("entry %d: expected object, got %T", i, item)
			}
			coll = append(coll, listEntry(obj))
		}
		return coll, nil
	case string:
		// Empty collections are sometimes rendered as "".
		if v == "" {
			return Collection{}, nil
		}
	}
	return nil, fmt.Errorf("unsupported collection type %T", raw)
}

func listEntry(obj *Object) Entry {
	if obj.Len() == 1 {
		id := obj.Keys()[0]
		if payload, ok := obj.values[id].(*Object); ok {
			if _, err := uuid.Parse(id); err == nil {
				return Entry{ID: id, Data: payload}
			}
		}
	}
	var id string
	if v, ok := obj.Get("uuid"); ok {
		id, _ = v.(string)
	}
	return Entry{ID: id, Data: obj}
}
