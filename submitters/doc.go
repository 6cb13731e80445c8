// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package submitters delivers inquiry payloads. Each type implements
// form.Submitter: Stub simulates a backend, HTTP posts to a remote
// endpoint and Store writes to the database.
package submitters
