package model

// FieldType enumerates the input kinds a field definition can declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeURL      FieldType = "url"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeColor    FieldType = "color"
	FieldTypeDate     FieldType = "date"
)

// Category names used to group fields and order tag emission. Emission order
// is the declaration order of Categories.
const (
	CategoryBasic     = "basic"
	CategorySEO       = "seo"
	CategoryOpenGraph = "opengraph"
	CategoryTwitter   = "twitter"
	CategorySchema    = "schema"
	CategoryAdvanced  = "advanced"
	CategoryMobile    = "mobile"
	CategorySocial    = "social"
)

// Categories lists the field categories in canonical emission order.
func Categories() []string {
	return []string{
		CategoryBasic,
		CategorySEO,
		CategoryOpenGraph,
		CategoryTwitter,
		CategorySchema,
		CategoryAdvanced,
		CategoryMobile,
		CategorySocial,
	}
}

// Condition gates a field's visibility on another field holding an exact
// value. A nil condition means the field is always visible.
type Condition struct {
	Field string `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
}

// Field is the static definition of one form input: its type, constraints,
// and optional visibility condition. Definitions are immutable once loaded;
// see pkg/fields for the configuration format.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Category    string            `json:"category,omitempty" yaml:"category,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength   int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min         *float64          `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64          `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern     string            `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Options     []string          `json:"options,omitempty" yaml:"options,omitempty"`
	Condition   *Condition        `json:"condition,omitempty" yaml:"condition,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
