package unbound

import (
	"fmt"
	"strings"

	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/schema"
	"opnsense-manager/core/utils"
	"opnsense-manager/core/validate"
)

// AliasName is the object type name of host override aliases.
const AliasName = "unbound_host_alias"

// hostsPath locates the host overrides in the settings response.
const hostsPath = "unbound.hosts.host"

var aliasFields = schema.NewTable(
	schema.Field{Name: "alias", API: "hostname", Aliases: []string{"hostname"}, Required: true},
	schema.Field{Name: "domain", Aliases: []string{"dom", "d"}, Required: true},
	schema.Field{Name: "target", API: "host", Kind: schema.Select, Aliases: []string{"tgt", "host"}, Required: true},
	schema.Field{Name: "description", Aliases: []string{"desc"}, Default: ""},
	schema.Field{Name: "enabled", Kind: schema.Bool, Default: true},
)

// HostAlias is the reconcile.Adapter for host override aliases.
type HostAlias struct{}

// NewHostAlias creates the host alias object type.
func NewHostAlias() *HostAlias {
	return &HostAlias{}
}

func (h *HostAlias) Name() string {
	return AliasName
}

func (h *HostAlias) Endpoint() reconcile.Endpoint {
	return reconcile.Endpoint{
		Module:           "unbound",
		Controller:       "settings",
		Search:           "get",
		KeyPath:          "unbound.aliases.alias",
		Add:              "addHostAlias",
		Set:              "setHostAlias",
		Delete:           "delHostAlias",
		ReloadController: "service",
		ReloadCommand:    "reconfigure",
	}
}

// Normalize reads the target back as the label of the selected host override.
func (h *HostAlias) Normalize(entry reconcile.Entry) reconcile.Record {
	out := aliasFields.Normalize(entry)
	group, _ := entry.Data.Get("host")
	out["target"] = nil
	if opt, ok := reconcile.Selected(group); ok {
		out["target"] = opt.Label()
	}
	return out
}

func (h *HostAlias) Desired(params map[string]any) (reconcile.Record, error) {
	return aliasFields.Desired(params)
}

// Validate checks the alias and domain are DNS names.
func (h *HostAlias) Validate(desired reconcile.Record) error {
	b := &validate.Builder{}
	aliasFields.Check(b, desired)
	b.HostLabel("alias", desired["alias"]).
		DomainName("domain", desired["domain"]).
		DomainName("target", desired["target"])
	return b.Build()
}

func (h *HostAlias) DefaultMatchFields() []string {
	return []string{"alias", "domain"}
}

func (h *HostAlias) ChangeFields() []string {
	return aliasFields.Names()
}

func (h *HostAlias) DiffFields() []string {
	return aliasFields.Names()
}

// Payload replaces the target name with the uuid of the host override it names.
func (h *HostAlias) Payload(desired reconcile.Record, snapshot *reconcile.Snapshot) (map[string]any, error) {
	payload := aliasFields.Payload(desired)

	target := utils.ToString(desired["target"])
	host, err := resolveHost(snapshot, target)
	if err != nil {
		return nil, err
	}
	payload["host"] = host.ID
	return payload, nil
}

// hostRef is a resolved host override.
type hostRef struct {
	ID    string
	Label string
}

// resolveHost finds the host override named "hostname.domain" or carrying the
// given uuid. Names compare case-insensitively and ignore a trailing dot.
func resolveHost(snapshot *reconcile.Snapshot, target string) (hostRef, error) {
	if snapshot == nil || snapshot.Body == nil {
		return hostRef{}, fmt.Errorf("cannot resolve target '%s': host overrides unavailable", target)
	}
	raw, _ := snapshot.Body.Lookup(hostsPath)
	hosts, err := reconcile.Ingest(raw)
	if err != nil {
		return hostRef{}, fmt.Errorf("cannot resolve target '%s': %w", target, err)
	}

	want := strings.TrimSuffix(target, ".")
	for _, host := range hosts {
		label := hostLabel(host.Data)
		if host.ID == target || strings.EqualFold(label, want) {
			return hostRef{ID: host.ID, Label: label}, nil
		}
	}
	return hostRef{}, validate.NewValidationError(fmt.Sprintf("target host override '%s' does not exist", target))
}

func hostLabel(data *reconcile.Object) string {
	hostname, _ := data.Get("hostname")
	domain, _ := data.Get("domain")
	return utils.ToString(hostname) + "." + utils.ToString(domain)
}

// ResolveReferences implements reconcile.ReferenceResolver. The target is
// rewritten to the label of the host override it resolves to, so a uuid or a
// differently cased name compares equal to what Normalize reads back.
func (h *HostAlias) ResolveReferences(desired reconcile.Record, snapshot *reconcile.Snapshot) (reconcile.Record, error) {
	host, err := resolveHost(snapshot, utils.ToString(desired["target"]))
	if err != nil {
		return nil, err
	}
	resolved := desired.Clone()
	resolved["target"] = host.Label
	return resolved, nil
}
