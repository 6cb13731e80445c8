// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "premiumdomain.com", c.Domain)
	assert.Equal(t, "domain-sales-landing", c.Source)
	assert.Equal(t, 62*time.Hour, c.CountdownOffset)
	assert.Equal(t, 47, c.InquiryCounterBase)
	require.Len(t, c.Pricing, 3)
	assert.Equal(t, "Buy It Now", c.Pricing[0].Title)
	assert.Equal(t, 25000, c.Pricing[0].Price)
	assert.True(t, c.Pricing[0].Featured)
	assert.Len(t, c.InquiryTypes, 4)
	assert.Equal(t, []int{15000, 20000, 25000}, c.OfferSuggestions)
	assert.Len(t, c.Testimonials, 3)

	// every feature has a tooltip
	for _, card := range c.Pricing {
		for _, f := range card.Features {
			assert.NotEmpty(t, c.Tooltips[f], f)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no pricing", "inquiry_types: [{value: general}]"},
		{"untitled card", "pricing: [{price: 10}]\ninquiry_types: [{value: general}]"},
		{"duplicate card", "pricing: [{title: A, price: 10}, {title: A, price: 20}]\ninquiry_types: [{value: general}]"},
		{"zero price", "pricing: [{title: A, price: 0}]\ninquiry_types: [{value: general}]"},
		{"no inquiry types", "pricing: [{title: A, price: 10}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.True(t, errors.Is(err, ErrInvalidContent), "got %v", err)
		})
	}

	_, err := Parse([]byte("pricing: ["))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidContent))
}

func TestParse_Minimal(t *testing.T) {
	c, err := Parse([]byte("pricing: [{title: A, price: 10}]\ninquiry_types: [{value: general, label: General}]"))
	require.NoError(t, err)
	assert.NotNil(t, c.Tooltips)
	assert.Zero(t, c.CountdownOffset)
	assert.True(t, c.HasInquiryType("general"))
	assert.False(t, c.HasInquiryType("offer"))
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "premiumdomain.com", c.Domain)

	path := filepath.Join(t.TempDir(), "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
domain: example.org
countdown_offset: 90m
pricing:
  - title: Buy
    price: 5000
inquiry_types:
  - value: offer
    label: Make an offer
`), 0o644))

	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "example.org", c.Domain)
	assert.Equal(t, 90*time.Minute, c.CountdownOffset)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading content file")
}
