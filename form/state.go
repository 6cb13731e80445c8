// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"errors"
	"fmt"
)

// Field names used by the inquiry form
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldInquiryType = "inquiryType"
	FieldOfferAmount = "offerAmount"
	FieldPhone       = "phone"
	FieldCompany     = "company"
	FieldMessage     = "message"
)

// InquiryOffer is the inquiry type that reveals the offer amount field.
const InquiryOffer = "offer"

var ErrUnknownField = errors.New("unknown field")

// Definition describes a field before any input. A field with ShowWhen set is
// only visible, and only required, while the named field holds the given value.
type Definition struct {
	Name     string
	Label    string
	Kind     Kind
	Step     int
	Required bool
	ShowWhen *Condition
}

// Condition ties a field's visibility to another field's value.
type Condition struct {
	Field string
	Value string
}

// DefaultDefinitions is the three step inquiry form: contact details,
// inquiry type, then optional extras.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: FieldFirstName, Label: "First name", Kind: KindName, Step: 1, Required: true},
		{Name: FieldLastName, Label: "Last name", Kind: KindName, Step: 1, Required: true},
		{Name: FieldEmail, Label: "Email", Kind: KindEmail, Step: 1, Required: true},
		{Name: FieldInquiryType, Label: "I'm interested in", Kind: KindText, Step: 2, Required: true},
		{
			Name: FieldOfferAmount, Label: "Your offer (USD)", Kind: KindCurrency, Step: 2, Required: true,
			ShowWhen: &Condition{Field: FieldInquiryType, Value: InquiryOffer},
		},
		{Name: FieldPhone, Label: "Phone", Kind: KindPhone, Step: 3},
		{Name: FieldCompany, Label: "Company", Kind: KindText, Step: 3},
		{Name: FieldMessage, Label: "Message", Kind: KindText, Step: 3},
	}
}

// ContactDefinitions is the default layout on a single step, for the one
// shot contact form.
func ContactDefinitions() []Definition {
	defs := DefaultDefinitions()
	for i := range defs {
		defs[i].Step = 1
	}
	return defs
}

// State is the mutable form: current step, field values and the in-flight
// flag. It is not safe for concurrent use; Form guards it.
type State struct {
	CurrentStep int
	TotalSteps  int
	InFlight    bool

	defs   map[string]Definition
	fields map[string]*Field
	order  []string
}

// NewState builds a state at step 1 from defs.
func NewState(defs []Definition) *State {
	s := &State{
		CurrentStep: 1,
		defs:        make(map[string]Definition, len(defs)),
		fields:      make(map[string]*Field, len(defs)),
	}

	for _, d := range defs {
		if d.Step > s.TotalSteps {
			s.TotalSteps = d.Step
		}
		s.defs[d.Name] = d
		s.order = append(s.order, d.Name)
		s.fields[d.Name] = &Field{
			Name:  d.Name,
			Label: d.Label,
			Kind:  d.Kind,
			Step:  d.Step,
		}
	}
	if s.TotalSteps == 0 {
		s.TotalSteps = 1
	}

	s.refresh()
	return s
}

// Field returns a copy of the named field.
func (s *State) Field(name string) (Field, error) {
	f, ok := s.fields[name]
	if !ok {
		return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return *f, nil
}

// Fields returns copies of all fields in definition order.
func (s *State) Fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.fields[name])
	}
	return out
}

// Input stores a new value. A field already showing an error is validated
// again so the error clears as soon as the input is fixed.
func (s *State) Input(name, value string) (Field, error) {
	f, ok := s.fields[name]
	if !ok {
		return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	f.Value = value
	s.refresh()

	if f.Invalid() {
		f.apply(Validate(*f))
	}
	return *f, nil
}

// Blur validates the named field and records the result on it.
func (s *State) Blur(name string) (Field, error) {
	f, ok := s.fields[name]
	if !ok {
		return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	f.apply(Validate(*f))
	return *f, nil
}

// ValidateStep validates the visible required fields of step and returns the
// names of those that failed.
func (s *State) ValidateStep(step int) []string {
	var invalid []string
	for _, name := range s.order {
		f := s.fields[name]
		if f.Step != step || !f.Visible || !f.Required {
			continue
		}
		f.apply(Validate(*f))
		if f.Invalid() {
			invalid = append(invalid, name)
		}
	}
	return invalid
}

// ValidateAll validates every visible field and returns the names of those
// that failed.
func (s *State) ValidateAll() []string {
	var invalid []string
	for _, name := range s.order {
		f := s.fields[name]
		if !f.Visible {
			continue
		}
		f.apply(Validate(*f))
		if f.Invalid() {
			invalid = append(invalid, name)
		}
	}
	return invalid
}

// Values returns the values of all visible fields, keyed by name. Hidden
// conditional fields are left out so a stale value never leaves the form.
func (s *State) Values() map[string]string {
	values := make(map[string]string, len(s.order))
	for _, name := range s.order {
		f := s.fields[name]
		if !f.Visible {
			continue
		}
		values[name] = f.Value
	}
	return values
}

// Clear empties every value and error. The step is left alone.
func (s *State) Clear() {
	for _, f := range s.fields {
		f.Value = ""
		f.ErrorMessage = ""
	}
	s.refresh()
}

// refresh recomputes conditional visibility and requiredness.
func (s *State) refresh() {
	for _, name := range s.order {
		d := s.defs[name]
		f := s.fields[name]

		visible := true
		if d.ShowWhen != nil {
			other, ok := s.fields[d.ShowWhen.Field]
			visible = ok && other.Value == d.ShowWhen.Value
		}

		f.Visible = visible
		f.Required = d.Required && visible
		if !visible {
			f.ErrorMessage = ""
		}
	}
}
