// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/domain-landing/widgets/pricing"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalidContent = errors.New("invalid page content")

// Testimonial is one carousel slide.
type Testimonial struct {
	Author string `json:"author" yaml:"author"`
	Role   string `json:"role" yaml:"role"`
	Quote  string `json:"quote" yaml:"quote"`
}

// InquiryType is one of the interest buttons of step 2.
type InquiryType struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Content is everything on the page that is configuration rather than code.
type Content struct {
	Domain             string            `yaml:"domain"`
	Source             string            `yaml:"source"`
	CountdownOffset    time.Duration     `yaml:"countdown_offset"`
	InquiryCounterBase int               `yaml:"inquiry_counter_base"`
	Pricing            []pricing.Card    `yaml:"pricing"`
	Tooltips           map[string]string `yaml:"tooltips"`
	InquiryTypes       []InquiryType     `yaml:"inquiry_types"`
	OfferSuggestions   []int             `yaml:"offer_suggestions"`
	Testimonials       []Testimonial     `yaml:"testimonials"`
}

// Default returns the built-in content.
func Default() (*Content, error) {
	return Parse(defaultYAML)
}

// Load reads content from path, or the built-in content when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks YAML content.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	if len(c.Pricing) == 0 {
		return fmt.Errorf("%w: at least one pricing card is required", ErrInvalidContent)
	}

	seen := make(map[string]bool, len(c.Pricing))
	for _, card := range c.Pricing {
		if card.Title == "" {
			return fmt.Errorf("%w: pricing card without title", ErrInvalidContent)
		}
		if seen[card.Title] {
			return fmt.Errorf("%w: duplicate pricing card %q", ErrInvalidContent, card.Title)
		}
		if card.Price <= 0 {
			return fmt.Errorf("%w: pricing card %q has no price", ErrInvalidContent, card.Title)
		}
		seen[card.Title] = true
	}

	if len(c.InquiryTypes) == 0 {
		return fmt.Errorf("%w: at least one inquiry type is required", ErrInvalidContent)
	}
	if c.Tooltips == nil {
		c.Tooltips = map[string]string{}
	}
	return nil
}

// HasInquiryType reports whether v is one of the configured interest values.
func (c *Content) HasInquiryType(v string) bool {
	for _, t := range c.InquiryTypes {
		if t.Value == v {
			return true
		}
	}
	return false
}
