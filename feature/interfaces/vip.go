package interfaces

import (
	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/schema"
	"opnsense-manager/core/validate"
)

// Name is the object type name of virtual IPs.
const Name = "vip"

var fields = schema.NewTable(
	schema.Field{Name: "address", API: "subnet", Aliases: []string{"addr", "ip"}, Required: true},
	schema.Field{Name: "mode", Kind: schema.Select, Aliases: []string{"m"}, Default: "ipalias", Choices: []string{"ipalias", "carp", "proxyarp", "other"}},
	schema.Field{Name: "cidr", API: "subnet_bits", Kind: schema.Int, Aliases: []string{"subnet_bits", "bits"}, Bounded: true, Min: 1, Max: 128},
	schema.Field{Name: "expand", API: "noexpand", Kind: schema.Bool, Invert: true, Default: true},
	schema.Field{Name: "bind", API: "nobind", Kind: schema.Bool, Invert: true, Default: true},
	schema.Field{Name: "gateway", Aliases: []string{"gw"}, Default: ""},
	schema.Field{Name: "password", Aliases: []string{"pwd"}, Default: "", Secret: true},
	schema.Field{Name: "vhid", Kind: schema.Int, Bounded: true, Min: 1, Max: 255},
	schema.Field{Name: "advertising_base", API: "advbase", Kind: schema.Int, Aliases: []string{"adv_base", "base"}, Default: 1, Bounded: true, Min: 1, Max: 254},
	schema.Field{Name: "advertising_skew", API: "advskew", Kind: schema.Int, Aliases: []string{"adv_skew", "skew"}, Default: 0, Bounded: true, Min: 0, Max: 254},
	schema.Field{Name: "description", API: "descr", Aliases: []string{"desc"}, Default: ""},
	schema.Field{Name: "interface", Kind: schema.Select, Aliases: []string{"int"}, Required: true},
)

// VIP is the reconcile.Adapter for interface virtual IPs.
type VIP struct{}

// NewVIP creates the virtual IP object type.
func NewVIP() *VIP {
	return &VIP{}
}

func (v *VIP) Name() string {
	return Name
}

func (v *VIP) Endpoint() reconcile.Endpoint {
	return reconcile.Endpoint{
		Module:        "interfaces",
		Controller:    "vip_settings",
		Search:        "get",
		KeyPath:       "vip.vip",
		Add:           "addItem",
		Set:           "setItem",
		Delete:        "delItem",
		ReloadCommand: "reconfigure",
	}
}

func (v *VIP) Normalize(entry reconcile.Entry) reconcile.Record {
	return fields.Normalize(entry)
}

func (v *VIP) Desired(params map[string]any) (reconcile.Record, error) {
	return fields.Desired(params)
}

// Validate checks integer bounds and the address.
func (v *VIP) Validate(desired reconcile.Record) error {
	b := &validate.Builder{}
	fields.Check(b, desired)
	b.Address("address", desired["address"])
	return b.Build()
}

func (v *VIP) DefaultMatchFields() []string {
	return []string{"address", "interface"}
}

// ChangeFields includes the password so a rotated secret still triggers an update.
func (v *VIP) ChangeFields() []string {
	return fields.Names()
}

// DiffFields leaves the password out of every reported diff.
func (v *VIP) DiffFields() []string {
	return fields.Reported()
}

func (v *VIP) Payload(desired reconcile.Record, _ *reconcile.Snapshot) (map[string]any, error) {
	return fields.Payload(desired), nil
}
