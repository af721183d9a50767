package model

// FieldDefinition describes one declared field on a content type.
type FieldDefinition struct {
	// ID is the field's stable identifier, used as the emitted field name
	// and as the base of link resolution metadata.
	ID string `json:"id"`

	// Name is the human-readable field label.
	Name string `json:"name,omitempty"`

	// Type is the field kind. See FieldKind constants.
	Type FieldKind `json:"type"`

	// Required marks the field as never absent on published records.
	Required bool `json:"required,omitempty"`

	// Disabled hides the field from editing; disabled fields are skipped
	// during translation.
	Disabled bool `json:"disabled,omitempty"`

	// Omitted hides the field from delivery; omitted fields are skipped
	// during translation.
	Omitted bool `json:"omitted,omitempty"`

	// Items describes the element type for Array fields.
	Items *FieldDefinition `json:"items,omitempty"`

	// LinkType names the link target class for Link fields,
	// e.g. "Entry" or "Asset".
	LinkType string `json:"linkType,omitempty"`

	// Validations constrain the field's values. Only link-target
	// constraints are interpreted during translation.
	Validations []Validation `json:"validations,omitempty"`
}

// FieldKind represents the declared kind of a field.
type FieldKind string

const (
	// Primitive kinds
	KindSymbol   FieldKind = "Symbol"
	KindText     FieldKind = "Text"
	KindInteger  FieldKind = "Integer"
	KindNumber   FieldKind = "Number"
	KindDate     FieldKind = "Date"
	KindBoolean  FieldKind = "Boolean"
	KindObject   FieldKind = "Object"
	KindLocation FieldKind = "Location"
	KindRichText FieldKind = "RichText"

	// Structural kinds
	KindArray FieldKind = "Array"
	KindLink  FieldKind = "Link"
)

// Link target classes carried by LinkType.
const (
	LinkTypeEntry = "Entry"
	LinkTypeAsset = "Asset"
)

// Skip reports whether the field is excluded from translation.
func (f FieldDefinition) Skip() bool {
	return f.Disabled || f.Omitted
}

// LinkValidations returns the validations that constrain link targets.
// For an array-of-links field the constraints live on Items, not on the
// field itself; callers pass the definition the constraints belong to.
func (f FieldDefinition) LinkValidations() []string {
	for _, v := range f.Validations {
		if targets := v.LinkContentTypes(); targets != nil {
			return targets
		}
	}
	return nil
}
