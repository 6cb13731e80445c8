// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package live runs the page's background simulations and pushes their output
to connected browsers.

# Scheduling

[Scheduler] wraps a cron runner with "@every" jobs. Each [Component]
registers its own jobs in Init:

  - [PriceFeed] drifts card prices every 30 seconds
  - [CounterFeed] grows the inquiry counter every 30 seconds and flickers it every 5
  - [CountdownFeed] publishes the special pricing countdown every second
  - [Sweeper] expires idle page sessions

# Feed

[Hub] keeps one goroutine pair per websocket client. Updates are JSON
objects:

	{"type": "price_update", "timestamp": "...", "data": [...]}

A client that cannot keep up is disconnected rather than blocking the others.
*/
package live
