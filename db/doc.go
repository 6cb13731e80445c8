// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the database connection, migrations and repositories.

# Connecting

Open connects and migrates in one step:

	conn, err := db.Open("sqlite", "landing.db")
	conn, err := db.Open("postgres", "postgres://...")

Migrations are embedded SQL files applied with goose. Safe to call on every
start; applied versions are skipped.

# Tables

  - inquiry: contact form submissions
  - event: telemetry events

# Repositories

InquiryRepo backs the store submitter and the admin listing:

	id, err := repo.Insert(ctx, inquiry)
	list, err := repo.List(ctx, 50, 0)

EventRepo is a telemetry.Sink; store errors are logged and swallowed so
analytics never break a request.

Queries are written with ? placeholders and rebound for the active driver.
*/
package db
