// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnvFile reads an optional .env file, then ParseFlags returns a Config:

	_ = cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p               Server port (default 3318)
	-d               Database URL (default landing.db for sqlite)
	-t               Database type: sqlite (default) or postgres
	-cors            Comma separated allowed origins
	-admin-salt      Admin key salt
	-ip-salt         IP hash salt
	-domain          Domain for sale
	-content         Page content YAML
	-submit          Inquiry delivery: stub (default), store, http
	-endpoint        Inquiry endpoint for http delivery
	-latency         Simulated latency for stub delivery (default 1s)
	-session-ttl     Idle page session lifetime (default 30m)
	-print-admin-key Print the admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	CORS_ORIGINS    → -cors
	ADMIN_KEY_SALT  → -admin-salt
	IP_HASH_SALT    → -ip-salt
	DOMAIN          → -domain
	CONTENT_PATH    → -content
	SUBMIT_MODE     → -submit
	SUBMIT_ENDPOINT → -endpoint
	SUBMIT_LATENCY  → -latency
	SESSION_TTL     → -session-ttl

CLI flags take precedence over environment variables, which take precedence
over the .env file.

# Validation

ParseFlags returns an error if:

  - the database type is neither sqlite nor postgres
  - postgres is selected without DATABASE_URL
  - http delivery is selected without SUBMIT_ENDPOINT
  - -print-admin-key is given without ADMIN_KEY_SALT
*/
package cliparse
