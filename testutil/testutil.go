// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/domain-landing/auth"
	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/content"
	"github.com/danielhkuo/domain-landing/db"
	"github.com/danielhkuo/domain-landing/models"
)

// TestDomain is the domain every test page sells.
const TestDomain = "premiumdomain.com"

// SetupTestDB creates a fresh migrated SQLite database in a temp dir
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "landing_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
		IPHashSalt:   "test-ip-salt",
		Domain:       TestDomain,
		SubmitMode:   models.SubmitStore,
		SessionTTL:   30 * time.Minute,
	}
}

// TestAdminKey is the admin key matching GetTestConfig
func TestAdminKey() string {
	return auth.GenerateAdminKey(TestDomain, GetTestConfig().AdminKeySalt)
}

// LoadTestContent returns the built-in page content
func LoadTestContent(t *testing.T) *content.Content {
	t.Helper()

	c, err := content.Default()
	if err != nil {
		t.Fatalf("Failed to load default content: %v", err)
	}
	c.Domain = TestDomain
	return c
}

// CreateTestInquiry stores an inquiry and returns its ID
func CreateTestInquiry(t *testing.T, conn *sqlx.DB, firstName, inquiryType string, at time.Time) string {
	t.Helper()

	id, err := db.NewInquiryRepo(conn).Insert(context.Background(), models.Inquiry{
		FirstName:   firstName,
		LastName:    "Tester",
		Email:       "tester@example.com",
		InquiryType: inquiryType,
		Domain:      TestDomain,
		Source:      "domain-sales-landing",
		SubmittedAt: at,
	})
	if err != nil {
		t.Fatalf("Failed to create test inquiry: %v", err)
	}
	return id
}

// Clock is a manually advanced time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
