package objects

import (
	"fmt"

	"opnsense-manager/core/validate"

	"github.com/go-viper/mapstructure/v2"
)

// Declaration is one declared object as written by a user.
type Declaration struct {
	// Type is the registered object type name, e.g. "firewall_rule".
	Type string `mapstructure:"type" json:"type" yaml:"type"`
	// State is "present" (default) or "absent".
	State string `mapstructure:"state" json:"state,omitempty" yaml:"state,omitempty"`
	// MatchFields override the object type's default match fields.
	MatchFields []string `mapstructure:"match_fields" json:"match_fields,omitempty" yaml:"match_fields,omitempty"`
	// Config holds the field values, aliases allowed.
	Config map[string]any `mapstructure:"config" json:"config" yaml:"config"`
}

// DecodeDeclaration decodes a loosely typed document into a Declaration.
// Unknown top-level keys are rejected.
func DecodeDeclaration(input map[string]any) (Declaration, error) {
	var d Declaration
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &d,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return d, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return d, validate.NewValidationError(err.Error())
	}
	if d.Type == "" {
		return d, validate.NewValidationError("object type is required")
	}
	return d, nil
}
