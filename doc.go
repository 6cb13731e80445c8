// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the domain landing page server.

The server backs the interactive parts of a landing page selling a premium
domain: a three step inquiry form, pricing cards, a testimonial carousel,
an exit intent popup, simulated urgency widgets and conversion analytics.

# Starting the Server

With no configuration the server accepts every inquiry through a simulated
backend and keeps analytics in a local SQLite file:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -domain example.com

Settings are also read from a .env file in the working directory. Flags
override environment variables, which override .env.

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite file or PostgreSQL URL (default: landing.db)
  - DOMAIN (-domain): Domain for sale, overrides the content file
  - CONTENT_PATH (-content): YAML page content (default: built in)
  - SUBMIT_MODE (-submit): stub, store or http (default: stub)
  - SUBMIT_ENDPOINT (-endpoint): Form backend URL for http mode
  - SUBMIT_LATENCY (-latency): Simulated delay for stub mode (default: 1s)
  - SESSION_TTL (-session-ttl): Idle page session lifetime (default: 30m)
  - CORS_ORIGINS (-cors): Comma separated allowed origins
  - ADMIN_KEY_SALT (-admin-salt): Secret for the admin key HMAC
  - IP_HASH_SALT (-ip-salt): Secret for hashing visitor addresses

Print the admin key for the configured domain and exit:

	go run . -admin-salt secret -print-admin-key

# Architecture

The server uses a handler-based architecture with dependency injection:

  - form: Field validation, step navigation and the submission pipeline
  - submitters: Where submitted inquiries go
  - widgets: Carousel, countdown, counter, exit intent, pricing, sticky bar
  - session: Per page view state
  - telemetry: Analytics events, funnel and Prometheus sinks
  - live: Scheduled widget updates pushed over WebSocket
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin key and address hashing
  - content: Page content loading
  - db: Connections, migrations and repositories
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
