// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := RequestID()
		if len(id) != 16 {
			t.Fatalf("RequestID() = %q, want 16 characters", id)
		}
		if _, err := hex.DecodeString(id); err != nil {
			t.Fatalf("RequestID() = %q is not hex", id)
		}
		if seen[id] {
			t.Fatalf("RequestID() repeated %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateAdminKey(t *testing.T) {
	key := GenerateAdminKey("premiumdomain.com", "salt")

	if key != GenerateAdminKey("premiumdomain.com", "salt") {
		t.Error("key is not deterministic")
	}
	if key != GenerateAdminKey("  PremiumDomain.COM ", "salt") {
		t.Error("key depends on domain case or padding")
	}
	if key == GenerateAdminKey("premiumdomain.net", "salt") {
		t.Error("different domains share a key")
	}
	if key == GenerateAdminKey("premiumdomain.com", "pepper") {
		t.Error("different salts share a key")
	}
	if strings.ContainsAny(key, "=+/") {
		t.Errorf("key %q is not URL safe", key)
	}
	// 32 byte MAC, unpadded base64
	if len(key) != 43 {
		t.Errorf("key length = %d, want 43", len(key))
	}
}

func TestValidateAdminKey(t *testing.T) {
	const domain, salt = "premiumdomain.com", "salt"
	valid := GenerateAdminKey(domain, salt)

	tests := []struct {
		name   string
		domain string
		key    string
		salt   string
		ok     bool
	}{
		{"valid", domain, valid, salt, true},
		{"surrounding space", domain, " " + valid + "\n", salt, true},
		{"domain case", "PREMIUMDOMAIN.com", valid, salt, true},
		{"other domain", "otherdomain.com", valid, salt, false},
		{"other salt", domain, valid, "pepper", false},
		{"truncated", domain, valid[:20], salt, false},
		{"not base64", domain, "!!not-a-key!!", salt, false},
		{"empty", domain, "", salt, false},
		{"admin disabled", domain, GenerateAdminKey(domain, ""), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.domain, tt.key, tt.salt)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidAdminKey) {
				t.Errorf("err = %v, want ErrInvalidAdminKey", err)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	h := HashIP("203.0.113.7", "salt")
	if len(h) != 16 {
		t.Fatalf("HashIP() = %q, want 16 characters", h)
	}
	if _, err := hex.DecodeString(h); err != nil {
		t.Fatalf("HashIP() = %q is not hex", h)
	}

	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"deterministic", "203.0.113.7", "203.0.113.7", true},
		{"whitespace", "203.0.113.7", " 203.0.113.7 ", true},
		{"ipv6 spelling", "2001:0db8:0000::0001", "2001:db8::1", true},
		{"different hosts", "203.0.113.7", "203.0.113.8", false},
		{"unparsable kept verbatim", "unknown", "unknown", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HashIP(tt.a, "salt") == HashIP(tt.b, "salt"); got != tt.same {
				t.Errorf("HashIP(%q) == HashIP(%q) is %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}

	if HashIP("203.0.113.7", "a") == HashIP("203.0.113.7", "b") {
		t.Error("salt does not change the hash")
	}
	if HashIP("", "salt") != "" {
		t.Error("empty address should hash to empty")
	}
}

func BenchmarkValidateAdminKey(b *testing.B) {
	key := GenerateAdminKey("premiumdomain.com", "salt")
	for i := 0; i < b.N; i++ {
		ValidateAdminKey("premiumdomain.com", key, "salt")
	}
}
