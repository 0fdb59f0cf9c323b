package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"petmate/internal/config"
	"petmate/internal/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Client is a thin HTTP client for the Petmate REST backend.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// Request describes one backend call. Endpoint is a stable label for logs
// and metrics; Path is the concrete URL path.
type Request struct {
	Method    string
	Endpoint  string
	Path      string
	Query     url.Values
	Body      any
	Anonymous bool
}

// NewClient constructs a client for cfg.BaseURL. A zero timeout keeps the
// net/http default of no deadline.
func NewClient(cfg config.BackendConfig, logger *zerolog.Logger) *Client {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// BaseURL is the backend root, used to build file view links.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Endpoint: endpoint, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, endpoint, path string, query url.Values, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Endpoint: endpoint, Path: path, Query: query, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, endpoint, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Endpoint: endpoint, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, endpoint, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Endpoint: endpoint, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, endpoint, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Endpoint: endpoint, Path: path}, out)
}

// Do sends the request and decodes a 2xx JSON body into out. out may be nil,
// or a *json.RawMessage to receive the body untouched.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.clientFor(ctx, r.Anonymous).Do(req)
	if err != nil {
		metrics.IncBackend(r.Endpoint, 0)
		c.logger.Debug().Err(err).Str("endpoint", r.Endpoint).Str("method", r.Method).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.IncBackend(r.Endpoint, resp.StatusCode)
	c.logger.Debug().
		Str("endpoint", r.Endpoint).
		Str("method", r.Method).
		Int("status", resp.StatusCode).
		Dur("dur", time.Since(start)).
		Msg("backend call")
	if err != nil {
		return fmt.Errorf("read %s response: %w", r.Endpoint, err)
	}

	if resp.StatusCode >= 300 {
		return newHTTPError(r.Endpoint, resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.Endpoint, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	endpoint := c.baseURL + r.Path
	if len(r.Query) > 0 {
		endpoint += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", r.Endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	return req, nil
}

// clientFor wraps the base client with a bearer token source when the
// context carries an access token.
func (c *Client) clientFor(ctx context.Context, anonymous bool) *http.Client {
	token := AccessToken(ctx)
	if anonymous || token == "" {
		return c.httpClient
	}
	return &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
	}
}

type ctxKey int

const (
	accessTokenKey ctxKey = iota
	requestIDKey
)

// WithAccessToken attaches the caller's bearer token to ctx.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, strings.TrimSpace(token))
}

func AccessToken(ctx context.Context) string {
	v, _ := ctx.Value(accessTokenKey).(string)
	return v
}

// WithRequestID attaches a correlation id forwarded as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
