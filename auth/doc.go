// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key and hashing utilities.

# Admin Keys

The stored inquiries are readable with an admin key derived from the domain
being sold:

	adminKey := auth.GenerateAdminKey("premiumdomain.com", salt)
	err := auth.ValidateAdminKey("premiumdomain.com", adminKey, salt)

The key is an HMAC of the lowercased domain, URL-safe base64 without
padding. It is deterministic, so it never needs to be stored. Run the server with -print-admin-key to obtain it.
Without a salt configured every key is rejected.

# IP Hashing

Client addresses attached to telemetry are hashed before storage:

	hash := auth.HashIP(ip, salt)

IPv4 and IPv6 addresses are normalized first.

# Request IDs

Outbound inquiry posts carry a random X-Request-ID:

	req.Header.Set("X-Request-ID", auth.RequestID())
*/
package auth
