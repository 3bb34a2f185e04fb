package objects

import (
	"opnsense-manager/core/reconcile"
	"opnsense-manager/feature/firewall"
	"opnsense-manager/feature/interfaces"
	"opnsense-manager/feature/unbound"
)

// NewRegistry returns a registry holding every supported object type.
func NewRegistry() *reconcile.Registry {
	return reconcile.NewRegistry(
		firewall.NewRule(),
		interfaces.NewVIP(),
		unbound.NewHostAlias(),
		unbound.NewDot(),
	)
}
