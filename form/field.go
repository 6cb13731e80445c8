// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Kind selects which pattern rule applies to a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPhone    Kind = "phone"
	KindName     Kind = "name"
	KindCurrency Kind = "currency"
)

// Validation messages
const (
	MsgRequired = "This field is required"
	MsgEmail    = "Please enter a valid email address"
	MsgPhone    = "Please enter a valid phone number"
	MsgName     = "Please enter a valid name (2-50 characters)"
	MsgMinOffer = "Minimum offer amount is $1,000"
	MsgGeneric  = "Please correct the errors below"
)

// MinOffer is the smallest offer amount accepted, in dollars.
const MinOffer = 1000

// space matches what browsers treat as whitespace: ASCII spaces, the Unicode
// space separators and the byte order mark.
const space = `\s\p{Z}\x{0085}\x{FEFF}`

var (
	emailPattern = regexp.MustCompile(`^[^@` + space + `]+@[^@` + space + `]+\.[^@` + space + `]+$`)
	phonePattern = regexp.MustCompile(`^[\+]?[\d\-\(\)` + space + `]{10,}$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z` + space + `]{2,50}$`)
	offerPattern = regexp.MustCompile(`^\$?[\d,]+(\.\d+)?$`)
)

// Field is one input of the form.
type Field struct {
	Name         string `json:"name"`
	Label        string `json:"label,omitempty"`
	Value        string `json:"value"`
	Required     bool   `json:"required"`
	Kind         Kind   `json:"kind"`
	Step         int    `json:"step"`
	Visible      bool   `json:"visible"`
	ErrorMessage string `json:"error,omitempty"`
}

// Invalid reports whether the field currently carries an error.
func (f *Field) Invalid() bool {
	return f.ErrorMessage != ""
}

// Result is the outcome of validating a single field.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Validate applies the field rules in precedence order. The first failing
// rule decides the message.
func Validate(f Field) Result {
	value := strings.TrimFunc(f.Value, isSpace)

	switch {
	case f.Required && value == "":
		return Result{Message: MsgRequired}
	case value == "":
		return Result{OK: true}
	case f.Kind == KindEmail && !emailPattern.MatchString(value):
		return Result{Message: MsgEmail}
	case f.Kind == KindPhone && !phonePattern.MatchString(value):
		return Result{Message: MsgPhone}
	case f.Kind == KindName && !namePattern.MatchString(value):
		return Result{Message: MsgName}
	case f.Kind == KindCurrency && belowMinimum(value):
		return Result{Message: MsgMinOffer}
	}

	return Result{OK: true}
}

// apply records r on the field, which is what the page renders as the error
// state and inline label.
func (f *Field) apply(r Result) {
	if r.OK {
		f.ErrorMessage = ""
		return
	}
	f.ErrorMessage = r.Message
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// belowMinimum parses an offer amount written as plain digits with an
// optional currency sign, thousands separators, spaces and decimal part.
// Anything else never meets the minimum.
func belowMinimum(value string) bool {
	compact := strings.ReplaceAll(value, " ", "")
	if !offerPattern.MatchString(compact) {
		return true
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(compact)
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return true
	}
	return amount < MinOffer
}
