// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bureau-foundation/chorus/lib/component"
	"github.com/bureau-foundation/chorus/lib/netutil"
	"github.com/bureau-foundation/chorus/lib/secret"
	"github.com/bureau-foundation/chorus/lib/version"
)

// DefaultBaseURL is the versioned REST root.
const DefaultBaseURL = "https://discord.com/api/v10"

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the versioned API root. Defaults to DefaultBaseURL.
	BaseURL string

	// Token is the bot token. Required. The client reads but does not
	// close it; the caller retains ownership.
	Token *secret.Buffer

	// UserAgent is sent on every request. Defaults to
	// version.UserAgent().
	UserAgent string

	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client

	// Parser decodes component trees in responses. If nil, the lenient
	// default parser is used.
	Parser *component.Parser

	// ValidateComponents checks outgoing component payloads against
	// the wire schema before sending.
	ValidateComponents bool

	// Logger is used for structured logging. If nil, slog.Default() is
	// used.
	Logger *slog.Logger
}

// Client is an authenticated REST client for one bot.
type Client struct {
	baseURL            string
	token              *secret.Buffer
	userAgent          string
	httpClient         *http.Client
	parser             *component.Parser
	validateComponents bool
	logger             *slog.Logger
}

// NewClient creates a REST client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Token == nil {
		return nil, fmt.Errorf("messaging: Token is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// Request URLs are built by concatenation; only the root is
	// validated here.
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("messaging: invalid BaseURL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("messaging: BaseURL %q is not absolute", baseURL)
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parser := config.Parser
	if parser == nil {
		parser = &component.Parser{Logger: config.Logger}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		token:              config.Token,
		userAgent:          userAgent,
		httpClient:         httpClient,
		parser:             parser,
		validateComponents: config.ValidateComponents,
		logger:             logger,
	}, nil
}

// CloseIdleConnections closes idle connections in the transport's pool.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// doRequest sends one JSON request and returns the response body. Any
// non-2xx response becomes an *APIError. A 204 returns a nil body.
func (c *Client) doRequest(ctx context.Context, method, path string, requestBody any, query ...url.Values) ([]byte, error) {
	var encoded []byte
	if requestBody != nil {
		var err error
		encoded, err = json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("messaging: failed to encode request body: %w", err)
		}
	}
	return c.doRequestRaw(ctx, method, path, encoded, query...)
}

func (c *Client) doRequestRaw(ctx context.Context, method, path string, encoded []byte, query ...url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 && len(query[0]) > 0 {
		requestURL += "?" + query[0].Encode()
	}

	var bodyReader io.Reader
	if encoded != nil {
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("messaging: failed to create request: %w", err)
	}
	if encoded != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Authorization", "Bot "+c.token.String())
	request.Header.Set("User-Agent", c.userAgent)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("messaging: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		responseBody, err := netutil.ReadResponse(response.Body)
		if err != nil {
			return nil, fmt.Errorf("messaging: failed to read response body: %w", err)
		}
		c.logger.Debug("api request",
			"method", method,
			"path", path,
			"status", response.StatusCode,
		)
		if response.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		return responseBody, nil
	}

	// A failed read still leaves a usable status code.
	errorBody, _ := netutil.ReadResponse(response.Body)
	apiErr := &APIError{StatusCode: response.StatusCode}
	if jsonErr := json.Unmarshal(errorBody, apiErr); jsonErr != nil {
		// Gateways and proxies in front of the API answer with HTML.
		apiErr.Message = strings.TrimSpace(netutil.ErrorBody(bytes.NewReader(errorBody)))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(response.StatusCode)
		}
	}
	if response.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = retryAfter(response.Header, errorBody)
	}
	c.logger.Debug("api request failed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"code", apiErr.Code,
	)
	return nil, apiErr
}

// retryAfter reads the rate-limit delay from the JSON body's
// retry_after (seconds, fractional) or the Retry-After header.
func retryAfter(header http.Header, body []byte) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.RetryAfter > 0 {
		return time.Duration(payload.RetryAfter * float64(time.Second))
	}
	if seconds, err := strconv.ParseFloat(header.Get("Retry-After"), 64); err == nil && seconds > 0 {
		return time.Duration(seconds * float64(time.Second))
	}
	return 0
}
