package schema

// Kind is how a field is typed in a declaration and encoded on the wire.
type Kind int

const (
	// String is passed through unchanged.
	String Kind = iota
	// Bool is encoded as "1"/"0" on the wire.
	Bool
	// Int is encoded as a decimal string on the wire.
	Int
	// Select is a single choice, read back from a selection group.
	Select
	// List is a set of values, comma separated on the wire or read back from a
	// multi-select group.
	List
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Select:
		return "select"
	case List:
		return "list"
	}
	return "string"
}

// Field is one entry of a Table.
type Field struct {
	// Name is the user facing field name.
	Name string
	// API is the wire name when it differs from Name.
	API string
	// Kind types the value.
	Kind Kind
	// Invert flips a Bool on the wire (expand <-> noexpand).
	Invert bool
	// Aliases are accepted in declarations in place of Name.
	Aliases []string
	// Default applies when the declaration omits the field.
	Default any
	// Required fields must be set when the object is declared present.
	Required bool
	// Choices restrict a Select or String field to a closed set.
	Choices []string
	// Min and Max bound an Int field when Bounded is set.
	Min, Max int
	Bounded  bool
	// Secret fields are compared but never reported in a diff.
	Secret bool
}

// WireName returns the name used by the appliance.
func (f Field) WireName() string {
	if f.API != "" {
		return f.API
	}
	return f.Name
}
