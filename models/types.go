package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/domain-landing/form"
	"github.com/danielhkuo/domain-landing/widgets/carousel"
	"github.com/danielhkuo/domain-landing/widgets/exitintent"
)

// Submission modes
const (
	SubmitStore = "store"
	SubmitStub  = "stub"
	SubmitHTTP  = "http"
)

// Request types

type FieldInputRequest struct {
	Value string `json:"value"`
}

type InquiryTypeRequest struct {
	Value string `json:"value"`
}

type OfferSuggestionRequest struct {
	Amount int `json:"amount"`
}

// field name -> raw value
type ContactRequest struct {
	Fields map[string]string `json:"fields"`
	Host   string            `json:"host,omitempty"`
}

type SelectCardRequest struct {
	Title string `json:"title"`
}

type GoToRequest struct {
	Index int `json:"index"`
}

type SwipeRequest struct {
	StartX float64 `json:"start_x"`
	EndX   float64 `json:"end_x"`
}

type MouseLeaveRequest struct {
	ClientY float64 `json:"client_y"`
}

type ScrollRequest struct {
	Percent float64 `json:"percent"`
}

type TrackEventRequest struct {
	Event      string            `json:"event"`
	Category   string            `json:"category"`
	Label      string            `json:"label"`
	Value      int               `json:"value"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Response types

type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is the full state of a page session.
type SessionResponse struct {
	SessionID        string          `json:"session_id"`
	CreatedAt        time.Time       `json:"created_at"`
	Form             form.View       `json:"form"`
	Carousel         carousel.View   `json:"carousel"`
	ExitIntent       exitintent.View `json:"exit_intent"`
	SelectedCard     string          `json:"selected_card,omitempty"`
	Comparing        bool            `json:"comparing"`
	StickyBarVisible bool            `json:"sticky_bar_visible"`
	MaxScroll        int             `json:"max_scroll"`
}

type StepResponse struct {
	Step form.StepOutcome `json:"step"`
	View form.View        `json:"view"`
}

type PrevResponse struct {
	Moved bool      `json:"moved"`
	View  form.View `json:"view"`
}

type ExitIntentResponse struct {
	Opened bool            `json:"opened"`
	Popup  exitintent.View `json:"popup"`
}

type ScrollResponse struct {
	StickyBarVisible bool  `json:"sticky_bar_visible"`
	Milestones       []int `json:"milestones"`
}

type HeartbeatResponse struct {
	Seconds    int    `json:"seconds"`
	Milestones []int  `json:"milestones"`
	Engagement string `json:"engagement"`
}

type SelectCardResponse struct {
	Selected string `json:"selected"`
}

type CompareResponse struct {
	Comparing bool   `json:"comparing"`
	Label     string `json:"label"`
}

type InquiryCountResponse struct {
	Count int `json:"count"`
}

type ListInquiriesResponse struct {
	Inquiries []Inquiry `json:"inquiries"`
	Total     int       `json:"total"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Domain   string `json:"domain"`
	Sessions int    `json:"sessions"`
}

// Domain types

// Inquiry is a persisted contact form submission.
type Inquiry struct {
	ID          string    `json:"id" db:"id"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone,omitempty" db:"phone"`
	Company     string    `json:"company,omitempty" db:"company"`
	InquiryType string    `json:"inquiry_type" db:"inquiry_type"`
	OfferAmount string    `json:"offer_amount,omitempty" db:"offer_amount"`
	Message     string    `json:"message,omitempty" db:"message"`
	Domain      string    `json:"domain" db:"domain"`
	Source      string    `json:"source" db:"source"`
	Fields      FieldMap  `json:"fields" db:"fields"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// FieldMap is every submitted form value, stored as a JSON object.
type FieldMap map[string]string

func (m FieldMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *FieldMap) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*m = FieldMap{}
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("scanning fields: unsupported type %T", src)
	}

	out := FieldMap{}
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("scanning fields: %w", err)
	}
	*m = out
	return nil
}

type RecentEventsResponse struct {
	Events []StoredEvent `json:"events"`
}

// StoredEvent is a persisted telemetry event.
type StoredEvent struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"event" db:"name"`
	Category   string    `json:"category" db:"category"`
	Label      string    `json:"label" db:"label"`
	Value      int       `json:"value" db:"value"`
	Properties string    `json:"properties" db:"properties"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
