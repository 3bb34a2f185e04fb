package firewall

import (
	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/schema"
	"opnsense-manager/core/validate"
)

// Name is the object type name of filter rules.
const Name = "firewall_rule"

// Actions, in the order they are checked when reading a rule back.
const (
	ActionPass   = "pass"
	ActionBlock  = "block"
	ActionReject = "reject"
)

// diffFields are the fields compared and reported for a rule. Enabled state is
// deliberately not among them.
var diffFields = []string{
	"sequence", "action", "interface", "direction", "ip_protocol", "protocol",
	"source_invert", "source_net", "source_port",
	"destination_invert", "destination_net", "destination_port",
	"gateway", "log", "description",
}

var fields = schema.NewTable(
	schema.Field{Name: "sequence", Kind: schema.Int, Required: true, Bounded: true, Min: 1, Max: 99999},
	schema.Field{Name: "action", Kind: schema.Select, Default: ActionPass, Choices: []string{ActionPass, ActionBlock, ActionReject}},
	schema.Field{Name: "interface", Kind: schema.Select, Aliases: []string{"int", "i"}, Required: true},
	schema.Field{Name: "direction", Kind: schema.Select, Aliases: []string{"dir"}, Default: "in", Choices: []string{"in", "out"}},
	schema.Field{Name: "ip_protocol", API: "ipprotocol", Kind: schema.Select, Aliases: []string{"ip", "ip_proto"}, Default: "inet", Choices: []string{"inet", "inet6", "inet46"}},
	schema.Field{Name: "protocol", Kind: schema.Select, Aliases: []string{"proto", "p"}, Default: "any"},
	schema.Field{Name: "source_invert", API: "source_not", Kind: schema.Bool, Aliases: []string{"src_inv", "si"}, Default: false},
	schema.Field{Name: "source_net", Aliases: []string{"source", "src", "s"}, Default: validate.Wildcard},
	schema.Field{Name: "source_port", Aliases: []string{"src_port", "sp"}, Default: ""},
	schema.Field{Name: "destination_invert", API: "destination_not", Kind: schema.Bool, Aliases: []string{"dest_inv", "di"}, Default: false},
	schema.Field{Name: "destination_net", Aliases: []string{"destination", "dest", "d"}, Default: validate.Wildcard},
	schema.Field{Name: "destination_port", Aliases: []string{"dest_port", "dp"}, Default: ""},
	schema.Field{Name: "gateway", Kind: schema.Select, Aliases: []string{"gw", "g"}, Default: ""},
	schema.Field{Name: "log", Kind: schema.Bool, Aliases: []string{"l"}, Default: true},
	schema.Field{Name: "description", Aliases: []string{"desc"}, Default: ""},
	schema.Field{Name: "enabled", Kind: schema.Bool, Default: true},
)

// Rule is the reconcile.Adapter for firewall filter rules.
type Rule struct{}

// NewRule creates the filter rule object type.
func NewRule() *Rule {
	return &Rule{}
}

// Name implements reconcile.Lister.
func (r *Rule) Name() string {
	return Name
}

// Endpoint implements reconcile.Lister.
func (r *Rule) Endpoint() reconcile.Endpoint {
	return reconcile.Endpoint{
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
}

// Desired implements reconcile.Adapter.
func (r *Rule) Desired(params map[string]any) (reconcile.Record, error) {
	return fields.Desired(params)
}

// Validate checks networks, ports and the protocol before anything is sent.
func (r *Rule) Validate(desired reconcile.Record) error {
	b := &validate.Builder{}
	fields.Check(b, desired)

	b.Network("source_net", desired["source_net"]).
		Network("destination_net", desired["destination_net"]).
		Port("source_port", desired["source_port"]).
		Port("destination_port", desired["destination_port"]).
		Disallowed("protocol", desired["protocol"], "TCP/UDP")

	return b.Build()
}

// DefaultMatchFields implements reconcile.Adapter.
func (r *Rule) DefaultMatchFields() []string {
	return []string{"sequence", "description"}
}

// ChangeFields implements reconcile.Adapter.
func (r *Rule) ChangeFields() []string {
	return diffFields
}

// DiffFields implements reconcile.Adapter.
func (r *Rule) DiffFields() []string {
	return diffFields
}

// Payload implements reconcile.Adapter.
func (r *Rule) Payload(desired reconcile.Record, _ *reconcile.Snapshot) (map[string]any, error) {
	return fields.Payload(desired), nil
}
