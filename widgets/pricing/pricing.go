// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pricing

import (
	"errors"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Currency is a display currency for the pricing cards.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// EURRate is the approximate conversion used for display only.
const EURRate = 0.92

var ErrUnknownCurrency = errors.New("unknown currency")

// ParseCurrency accepts "usd"/"eur" in any case; empty means USD.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case "", USD:
		return USD, nil
	case EUR:
		return EUR, nil
	}
	return "", ErrUnknownCurrency
}

// Symbol is the sign printed before the amount.
func (c Currency) Symbol() string {
	if c == EUR {
		return "€"
	}
	return "$"
}

// ToggleLabel is the text of the button that switches away from c.
func (c Currency) ToggleLabel() string {
	if c == EUR {
		return "View in USD"
	}
	return "View in EUR"
}

// Convert turns a USD amount into c, rounded to whole units.
func Convert(usd int, c Currency) int {
	if c == EUR {
		return int(math.Round(float64(usd) * EURRate))
	}
	return usd
}

// Format groups thousands the way the page prints prices.
func Format(amount int) string {
	return humanize.Comma(int64(amount))
}

// Card is a pricing option as configured.
type Card struct {
	Title    string   `json:"title" yaml:"title"`
	Price    int      `json:"price" yaml:"price"`
	Features []string `json:"features" yaml:"features"`
	Featured bool     `json:"featured,omitempty" yaml:"featured"`
}

// Indicator is the market demand badge on a card.
type Indicator struct {
	Icon  string `json:"icon"`
	Text  string `json:"text"`
	Class string `json:"class"`
}

// IndicatorFor picks the badge for a USD price.
func IndicatorFor(price int) Indicator {
	switch {
	case price >= 25000:
		return Indicator{Icon: "🔥", Text: "High Demand", Class: "high-demand"}
	case price >= 2000:
		return Indicator{Icon: "📈", Text: "Growing Interest", Class: "medium-demand"}
	default:
		return Indicator{Icon: "💰", Text: "Great Value", Class: "good-value"}
	}
}

// Feature is one bullet of a card with its optional tooltip.
type Feature struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
}

// CardView is a card ready to render.
type CardView struct {
	Title       string    `json:"title"`
	Amount      int       `json:"amount"`
	Display     string    `json:"display"`
	Currency    Currency  `json:"currency"`
	Symbol      string    `json:"symbol"`
	ToggleLabel string    `json:"toggle_label"`
	Indicator   Indicator `json:"indicator"`
	Features    []Feature `json:"features"`
	Featured    bool      `json:"featured,omitempty"`
	Selected    bool      `json:"selected"`
	Available   bool      `json:"available"`
}

// Render builds card views. prices holds the current USD price per title and
// falls back to the configured price; selected marks the chosen card.
func Render(cards []Card, prices map[string]int, tooltips map[string]string, c Currency, selected string) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, card := range cards {
		// simulated drift applies to dollar prices; euro amounts convert the
		// configured price
		amount := Convert(card.Price, c)
		if p, ok := prices[card.Title]; ok && c == USD {
			amount = p
		}

		features := make([]Feature, 0, len(card.Features))
		for _, text := range card.Features {
			features = append(features, Feature{Text: text, Tooltip: tooltips[text]})
		}

		out = append(out, CardView{
			Title:       card.Title,
			Amount:      amount,
			Display:     Format(amount),
			Currency:    c,
			Symbol:      c.Symbol(),
			ToggleLabel: c.ToggleLabel(),
			// the badge follows the configured price, not the simulated one
			Indicator: IndicatorFor(card.Price),
			Features:  features,
			Featured:  card.Featured,
			Selected:  card.Title == selected,
			Available: true,
		})
	}
	return out
}
