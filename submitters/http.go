// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submitters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danielhkuo/domain-landing/auth"
	"github.com/danielhkuo/domain-landing/form"
)

var ErrRemoteStatus = errors.New("unexpected response status")

// HTTP posts the payload as JSON and expects {"success": bool, "message": string}.
// Each attempt carries a fresh X-Request-ID.
type HTTP struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTP(endpoint string) *HTTP {
	return &HTTP{Endpoint: endpoint, Client: &http.Client{Timeout: 15 * time.Second}}
}

func (h *HTTP) Submit(ctx context.Context, p form.Payload) (form.Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return form.Response{}, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return form.Response{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", auth.RequestID())

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return form.Response{}, fmt.Errorf("posting inquiry: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return form.Response{}, fmt.Errorf("%w: %d", ErrRemoteStatus, res.StatusCode)
	}

	var out form.Response
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&out); err != nil {
		return form.Response{}, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}
