// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net"
	"strings"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// RequestID returns 16 random hex characters for tagging outbound calls.
func RequestID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func adminMAC(domain, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strings.ToLower(strings.TrimSpace(domain))))
	return h.Sum(nil)
}

// GenerateAdminKey derives the admin key for the domain on sale. It is
// deterministic, so nothing needs storing.
func GenerateAdminKey(domain, salt string) string {
	return base64.RawURLEncoding.EncodeToString(adminMAC(domain, salt))
}

// ValidateAdminKey checks a key presented in X-Admin-Key. An empty salt
// disables admin access.
func ValidateAdminKey(domain, adminKey, salt string) error {
	if salt == "" {
		return ErrInvalidAdminKey
	}
	got, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(adminKey))
	if err != nil || !hmac.Equal(got, adminMAC(domain, salt)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP pseudonymizes a visitor address for telemetry. Equivalent spellings
// of the same address hash alike; an empty address hashes to "".
func HashIP(ip, salt string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return ""
	}
	if parsed := net.ParseIP(ip); parsed != nil {
		ip = parsed.String()
	}

	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil)[:8])
}
