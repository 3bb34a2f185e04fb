// Package unbound implements the Unbound DNS object types.
//
// Host aliases (unbound_host_alias) add extra names to an existing host
// override. The appliance references the override by uuid through a selection
// group; declarations reference it by its "hostname.domain" name, which is
// resolved against the host overrides in the same settings response.
//
// DNS-over-TLS forwarders (unbound_dot) are exposed read-only.
package unbound
