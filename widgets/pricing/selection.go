// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pricing

import (
	"errors"
	"sync"
)

var ErrUnknownCard = errors.New("unknown pricing card")

// Selection is a visitor's interaction with the cards: at most one selected
// card, and whether comparison mode is on.
type Selection struct {
	mu        sync.Mutex
	titles    map[string]bool
	selected  string
	comparing bool
}

func NewSelection(cards []Card) *Selection {
	s := &Selection{titles: make(map[string]bool, len(cards))}
	for _, c := range cards {
		s.titles[c.Title] = true
	}
	return s
}

// Select marks title as the only selected card.
func (s *Selection) Select(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.titles[title] {
		return ErrUnknownCard
	}
	s.selected = title
	return nil
}

// Selected returns the chosen card title, empty if none.
func (s *Selection) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// ToggleCompare flips comparison mode and returns the new state.
func (s *Selection) ToggleCompare() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparing = !s.comparing
	return s.comparing
}

func (s *Selection) Comparing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comparing
}

// CompareLabel is the text of the comparison toggle.
func CompareLabel(comparing bool) string {
	if comparing {
		return "Exit Compare"
	}
	return "Compare Options"
}
