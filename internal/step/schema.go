package step

// FieldType enumerates the value types a configurable field can take.
type FieldType string

const (
	FieldTypeString          FieldType = "string"
	FieldTypeInt             FieldType = "int"
	FieldTypeFloat           FieldType = "float"
	FieldTypeBool            FieldType = "bool"
	FieldTypeOptions         FieldType = "options"
	FieldTypeMultipleOptions FieldType = "multiple-options"
	FieldTypeObject          FieldType = "object"
)

// Field describes one user-configurable field in a self-describing form
// consumable by a configuration UI.
type Field struct {
	Name    string    `json:"name" yaml:"name"`
	Title   string    `json:"title" yaml:"title"`
	Type    FieldType `json:"type" yaml:"type"`
	Default any       `json:"default,omitempty" yaml:"default,omitempty"`
	// Options lists the selectable values for options and multiple-options fields.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Schema is the ordered list of a step's configurable fields.
type Schema struct {
	Fields []Field `json:"fields" yaml:"fields"`
}

// Float returns a pointer to v, for Field.Min and Field.Max literals.
func Float(v float64) *float64 {
	return &v
}
