// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/zkid-tui/internal/config"
	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// maxResponseSize caps response bodies to prevent memory exhaustion.
	maxResponseSize = 4 * 1024 * 1024 // 4MB

	// generateBurst is the limiter burst for proof generation requests.
	generateBurst = 3

	// generatePerMinute is the sustained proof generation rate.
	generatePerMinute = 10

	// requestIDHeader carries the client-generated correlation ID.
	requestIDHeader = "X-Request-Id"
)

// sharedTransport pools connections across all service requests.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
	TLSClientConfig: &tls.Config{
		MinVersion: tls.VersionTLS12,
	},
}

// =============================================================================
// ENVELOPE
// =============================================================================

// envelope is the wire format wrapping every service response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the zkid service. It is safe for concurrent use.
type Client struct {
	baseURL string
	debug   bool

	// httpClient carries normal authenticated traffic.
	httpClient *http.Client

	// bareClient issues token renewal requests only. It never attaches a
	// bearer token and never triggers renewal itself, so a failing renewal
	// cannot recurse.
	bareClient *http.Client

	// genLimiter throttles proof generation requests locally.
	genLimiter *rate.Limiter

	mu           sync.RWMutex
	accessToken  string
	renewalToken string

	// refreshMu serializes token renewal so concurrent 401s renew once.
	refreshMu sync.Mutex

	// onRenewed is called with the new token pair after a successful renewal.
	onRenewed func(accessToken, renewalToken string)

	// onExpired is called when renewal fails and the session is over.
	onExpired func()
}

// New creates a client for the given configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.API.BaseURL,
		debug:   cfg.API.Debug,
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   cfg.API.Timeout(),
		},
		bareClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   cfg.API.Timeout(),
		},
		genLimiter: rate.NewLimiter(rate.Limit(generatePerMinute)/60, generateBurst),
	}
}

// SetTokens installs the current token pair.
func (c *Client) SetTokens(accessToken, renewalToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.renewalToken = renewalToken
}

// ClearTokens drops the token pair.
func (c *Client) ClearTokens() {
	c.SetTokens("", "")
}

// HasToken reports whether an access token is installed.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

// OnTokensRenewed registers a callback invoked after a successful renewal.
// The session manager uses it to persist the fresh pair.
func (c *Client) OnTokensRenewed(fn func(accessToken, renewalToken string)) {
	c.onRenewed = fn
}

// OnSessionExpired registers a callback invoked when renewal fails.
func (c *Client) OnSessionExpired(fn func()) {
	c.onExpired = fn
}

// tokens returns the current pair.
func (c *Client) tokens() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.renewalToken
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// do issues a JSON request and decodes the envelope's data into out.
// On a 401 it renews the token once and resubmits; a second 401 (or a
// failed renewal) ends the session.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	build := func() (*http.Request, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}
	return c.send(ctx, build, out)
}

// send runs the request with the 401 renew-once policy. The request is
// rebuilt per attempt because a body reader is consumed on send.
func (c *Client) send(ctx context.Context, build func() (*http.Request, error), out any) error {
	requestID := uuid.NewString()

	for attempt := 0; ; attempt++ {
		req, err := build()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
		req.Header.Set(requestIDHeader, requestID)
		req.Header.Set("Accept", "application/json")

		access, _ := c.tokens()
		if access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
		if c.debug {
			log.Printf("api: %s %s request_id=%s token=%s",
				req.Method, req.URL.Path, requestID, util.MaskToken(access))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
			resp.Body.Close()

			if err := c.renew(ctx, access); err != nil {
				return err
			}
			continue // resubmit exactly once with the fresh token
		}

		return decodeEnvelope(resp, out, requestID)
	}
}

// renew exchanges the renewal token for a fresh pair. staleAccess is the
// access token that just got a 401; if another goroutine already renewed,
// the network call is skipped.
func (c *Client) renew(ctx context.Context, staleAccess string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, renewal := c.tokens()
	if access != "" && access != staleAccess {
		return nil // already renewed by a concurrent request
	}
	if renewal == "" {
		c.expire()
		return ErrSessionExpired
	}

	body, err := json.Marshal(map[string]string{"refreshToken": renewal})
	if err != nil {
		return fmt.Errorf("encode renewal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/auth/refresh", nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.bareClient.Do(req)
	if err != nil {
		c.expire()
		return fmt.Errorf("%w: renewal: %v", ErrSessionExpired, err)
	}

	var renewed struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := decodeEnvelope(resp, &renewed, ""); err != nil || renewed.Token == "" {
		c.expire()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		return ErrSessionExpired
	}

	c.SetTokens(renewed.Token, renewed.RefreshToken)
	if c.onRenewed != nil {
		c.onRenewed(renewed.Token, renewed.RefreshToken)
	}
	if c.debug {
		log.Printf("api: token renewed, new token=%s", util.MaskToken(renewed.Token))
	}
	return nil
}

// expire clears local tokens and notifies the session layer.
func (c *Client) expire() {
	c.ClearTokens()
	if c.onExpired != nil {
		c.onExpired()
	}
}

// decodeEnvelope reads the response envelope and unmarshals data into out.
func decodeEnvelope(resp *http.Response, out any, requestID string) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				return &Error{Status: resp.StatusCode, RequestID: requestID}
			}
			return fmt.Errorf("%w: decode envelope: %v", ErrTransport, err)
		}
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := ""
		if env.Error != nil {
			msg = env.Error.Message
		}
		return &Error{Status: resp.StatusCode, Message: msg, RequestID: requestID}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode data: %v", ErrTransport, err)
		}
	}
	return nil
}

// endpoint joins the base URL, path, and query string.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
