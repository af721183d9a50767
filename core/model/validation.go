package model

import (
	"encoding/json"
	"fmt"
)

// Validation is one validation rule attached to a field. Content-model
// exports carry many rule shapes; only link-target constraints are
// interpreted here, the rest are preserved opaquely in Raw.
type Validation struct {
	// LinkContentType restricts which content types a link may point at.
	// The export declares it either as a single name or a list of names;
	// both normalize to a slice.
	LinkContentType []string

	// Raw holds the rule as it appeared in the export.
	Raw json.RawMessage
}

// linkContentTypeRule matches the one validation shape translation cares
// about.
type linkContentTypeRule struct {
	LinkContentType json.RawMessage `json:"linkContentType"`
}

// UnmarshalJSON decodes a validation rule, normalizing linkContentType
// from either a single string or a list of strings.
func (v *Validation) UnmarshalJSON(data []byte) error {
	v.Raw = append(v.Raw[:0], data...)

	var rule linkContentTypeRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("parse validation: %w", err)
	}
	if len(rule.LinkContentType) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(rule.LinkContentType, &list); err == nil {
		v.LinkContentType = list
		return nil
	}

	var single string
	if err := json.Unmarshal(rule.LinkContentType, &single); err != nil {
		return fmt.Errorf("parse linkContentType: %w", err)
	}
	v.LinkContentType = []string{single}
	return nil
}

// MarshalJSON writes the rule back out as it appeared in the export.
func (v Validation) MarshalJSON() ([]byte, error) {
	if len(v.Raw) > 0 {
		return v.Raw, nil
	}
	return json.Marshal(map[string]any{"linkContentType": v.LinkContentType})
}

// LinkContentTypes returns the link-target constraint, or nil when this
// rule does not constrain link targets.
func (v Validation) LinkContentTypes() []string {
	return v.LinkContentType
}
