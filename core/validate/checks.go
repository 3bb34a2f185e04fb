package validate

import (
	"net/netip"
	"strings"

	"opnsense-manager/core/utils"

	"github.com/miekg/dns"
)

// Wildcard is the network token meaning "any address".
const Wildcard = "any"

func blank(value any) bool {
	return value == nil || utils.ToString(value) == ""
}

// Network checks a CIDR network or single address. Empty values and the wildcard
// token are accepted without parsing. Networks must not have host bits set.
func (b *Builder) Network(field string, value any) *Builder {
	if blank(value) {
		return b
	}
	s := strings.TrimSpace(utils.ToString(value))
	if s == Wildcard {
		return b
	}
	if prefix, err := netip.ParsePrefix(s); err == nil {
		if prefix == prefix.Masked() {
			return b
		}
	} else if _, err := netip.ParseAddr(s); err == nil {
		return b
	}
	return b.AddInvalid(field, value)
}

// Address checks a single IP address.
func (b *Builder) Address(field string, value any) *Builder {
	if blank(value) {
		return b
	}
	if _, err := netip.ParseAddr(strings.TrimSpace(utils.ToString(value))); err != nil {
		return b.AddInvalid(field, value)
	}
	return b
}

// Port checks a port number in [1, 65535]. Empty values are accepted.
func (b *Builder) Port(field string, value any) *Builder {
	return b.IntRange(field, value, 1, 65535)
}

// IntRange checks an integer in [min, max]. Empty values are accepted.
func (b *Builder) IntRange(field string, value any, min, max int) *Builder {
	if blank(value) {
		return b
	}
	n, err := utils.ToInt(value)
	if err != nil || n < min || n > max {
		return b.AddInvalid(field, value)
	}
	return b
}

// Disallowed rejects any of the given tokens.
func (b *Builder) Disallowed(field string, value any, tokens ...string) *Builder {
	s := utils.ToString(value)
	for _, token := range tokens {
		if s == token {
			return b.AddInvalid(field, value)
		}
	}
	return b
}

// OneOf checks the value against a closed set. Empty values are accepted.
func (b *Builder) OneOf(field string, value any, choices ...string) *Builder {
	if blank(value) {
		return b
	}
	s := utils.ToString(value)
	for _, c := range choices {
		if s == c {
			return b
		}
	}
	return b.AddInvalid(field, value)
}

// DomainName checks a DNS name such as "example.net". Empty values are accepted.
func (b *Builder) DomainName(field string, value any) *Builder {
	if blank(value) {
		return b
	}
	s := utils.ToString(value)
	if !validName(s) {
		return b.AddInvalid(field, value)
	}
	return b
}

// HostLabel checks a single DNS label such as a host name without its domain.
// The wildcard "*" is accepted.
func (b *Builder) HostLabel(field string, value any) *Builder {
	if blank(value) {
		return b
	}
	s := utils.ToString(value)
	if s == "*" {
		return b
	}
	if strings.Contains(strings.TrimSuffix(s, "."), ".") || !validName(s) {
		return b.AddInvalid(field, value)
	}
	return b
}

func validName(s string) bool {
	if _, ok := dns.IsDomainName(s); !ok {
		return false
	}
	for _, label := range dns.SplitDomainName(s) {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
				return false
			}
		}
	}
	return true
}
