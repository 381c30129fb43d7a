// Package models defines the wire-level types of the public declaration
// registry. The registry is loose about scalar types (identifiers and flags
// arrive as strings or numbers depending on the endpoint revision), so the
// scalar fields decode through flexible wrappers instead of bare ints.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt decodes a JSON number or a numeric string into an int.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("numeric string expected, got %q: %w", s, err)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// FlexBool decodes true/false, 0/1 and their string forms.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "1", "true", "True":
		*f = true
	default:
		*f = false
	}
	return nil
}

// FilingCard is one entry of the list-by-name response: the filing header
// without the body.
type FilingCard struct {
	ID                 string  `json:"id"`
	DeclarationType    FlexInt `json:"declaration_type"`
	Type               FlexInt `json:"type"`
	UserDeclarantID    FlexInt `json:"user_declarant_id"`
	Date               string  `json:"date"`
	DeclarationYear    FlexInt `json:"declaration_year"`
	CorruptionAffected string  `json:"corruption_affected,omitempty"`
}

// FilingList is the list-by-name response envelope.
type FilingList struct {
	Count FlexInt      `json:"count"`
	Data  []FilingCard `json:"data"`
}

// Step is one numbered section of a filing body. Data stays raw because the
// record shape varies per section and per form revision; the parser walks it
// with ordered field-name candidates.
type Step struct {
	IsNotApplicable FlexBool        `json:"isNotApplicable"`
	Data            json.RawMessage `json:"data"`
}

// FilingBody is the document-by-id response envelope: a map of numbered
// steps under "data".
type FilingBody struct {
	Data map[string]Step `json:"data"`
}

// StepByNumber returns the section with the given number, if present.
func (b *FilingBody) StepByNumber(n int) (Step, bool) {
	step, ok := b.Data[fmt.Sprintf("step_%d", n)]
	return step, ok
}
