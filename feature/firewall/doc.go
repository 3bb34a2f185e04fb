// Package firewall implements the firewall filter rule object type.
//
// Rules live under firewall/filter and are returned by the appliance in a very
// verbose form: booleans as "0"/"1", and action, interface, direction, IP
// protocol, protocol and gateway as selection groups. The Rule adapter
// flattens them into Records with the same shape as a declaration so the
// generic reconcile engine can match and diff them.
//
// Declarations match existing rules on sequence and description unless other
// match fields are given. Source and destination networks and ports are
// validated before the appliance is contacted.
package firewall
