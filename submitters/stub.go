// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submitters

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/domain-landing/form"
)

// Stub accepts every payload after Latency. It is the default backend.
type Stub struct {
	Latency time.Duration
	Logger  *slog.Logger
}

func (s Stub) Submit(ctx context.Context, p form.Payload) (form.Response, error) {
	if s.Latency > 0 {
		t := time.NewTimer(s.Latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return form.Response{}, ctx.Err()
		}
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "inquiry accepted",
		"inquiry_type", p.InquiryType(),
		"domain", p.Domain,
		"email", p.Value(form.FieldEmail),
	)
	return form.Response{Success: true}, nil
}
