// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

// StepOutcome reports what a Next call did.
type StepOutcome struct {
	Advanced bool     `json:"advanced"`
	From     int      `json:"from"`
	To       int      `json:"to"`
	Invalid  []string `json:"invalid,omitempty"`
}

// Next moves forward one step when every visible required field of the
// current step validates. Failing fields are flagged and the step is kept.
// On the last step Next does nothing.
func (s *State) Next() StepOutcome {
	out := StepOutcome{From: s.CurrentStep, To: s.CurrentStep}
	if s.CurrentStep >= s.TotalSteps {
		return out
	}

	if invalid := s.ValidateStep(s.CurrentStep); len(invalid) > 0 {
		out.Invalid = invalid
		return out
	}

	s.CurrentStep++
	out.Advanced = true
	out.To = s.CurrentStep
	return out
}

// Prev moves back one step without validating. It reports whether the step
// changed.
func (s *State) Prev() bool {
	if s.CurrentStep <= 1 {
		return false
	}
	s.CurrentStep--
	return true
}

// OnLastStep reports whether the submit control replaces next.
func (s *State) OnLastStep() bool {
	return s.CurrentStep == s.TotalSteps
}
