package unbound

import (
	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/schema"
)

// DotName is the object type name of DNS-over-TLS forwarders.
const DotName = "unbound_dot"

var dotFields = schema.NewTable(
	schema.Field{Name: "enabled", Kind: schema.Bool},
	schema.Field{Name: "type", Kind: schema.Select},
	schema.Field{Name: "domain"},
	schema.Field{Name: "server"},
	schema.Field{Name: "port", Kind: schema.Int},
	schema.Field{Name: "verify"},
)

// Dot lists DNS-over-TLS forwarders. It implements reconcile.Lister only.
type Dot struct{}

// NewDot creates the DNS-over-TLS list type.
func NewDot() *Dot {
	return &Dot{}
}

func (d *Dot) Name() string {
	return DotName
}

func (d *Dot) Endpoint() reconcile.Endpoint {
	return reconcile.Endpoint{
		Module:     "unbound",
		Controller: "settings",
		Search:     "get",
		KeyPath:    "unbound.dots.dot",
	}
}

func (d *Dot) Normalize(entry reconcile.Entry) reconcile.Record {
	return dotFields.Normalize(entry)
}
