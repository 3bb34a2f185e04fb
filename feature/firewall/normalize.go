package firewall

import "opnsense-manager/core/reconcile"

// copyFields are passed through unchanged.
var copyFields = []string{
	"sequence", "source_net", "source_port",
	"destination_net", "destination_port", "description",
}

// selectFields maps wire selection groups to record fields.
var selectFields = [][2]string{
	{"interface", "interface"},
	{"direction", "direction"},
	{"ipprotocol", "ip_protocol"},
	{"protocol", "protocol"},
	{"gateway", "gateway"},
}

// Normalize implements reconcile.Normalizer. It never fails: missing or
// malformed members read back as false or nil.
func (r *Rule) Normalize(entry reconcile.Entry) reconcile.Record {
	data := entry.Data
	out := make(reconcile.Record, 20)

	if entry.ID != "" {
		out["uuid"] = entry.ID
	}

	out["enabled"] = truthy(data, "enabled")
	out["log"] = truthy(data, "log")
	out["source_invert"] = truthy(data, "source_not")
	out["destination_invert"] = truthy(data, "destination_not")
	out["action"] = action(data)

	for _, field := range copyFields {
		v, _ := data.Get(field)
		out[field] = v
	}

	for _, pair := range selectFields {
		out[pair[1]] = nil
		group, _ := data.Get(pair[0])
		if opt, ok := reconcile.Selected(group); ok {
			out[pair[1]] = opt.Key
		}
	}

	return out
}

func truthy(data *reconcile.Object, key string) bool {
	v, _ := data.Get(key)
	return reconcile.Truthy(v)
}

// action checks block, then reject, and falls back to pass.
func action(data *reconcile.Object) string {
	for _, candidate := range []string{ActionBlock, ActionReject} {
		if sel, ok := data.Lookup("action." + candidate + ".selected"); ok && reconcile.Truthy(sel) {
			return candidate
		}
	}
	return ActionPass
}
