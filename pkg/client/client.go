// Package client is a Go client for the LUMIN API. It keeps the session
// tokens, refreshes them once when the server answers 401 and caches the
// dashboard for a few minutes.
package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/tidwall/gjson"
)

const (
	DefaultTimeout = 10 * time.Second

	refreshPath = "/api/v1/auth/refresh"
	authPrefix  = "/api/v1/auth/"
)

// APIError is a response with success=false or a non-2xx status.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	msg := "api error " + strconv.Itoa(e.Status) + ": " + e.Message
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

type Client struct {
	baseURL          string
	http             *http.Client
	tokens           TokenStore
	timeout          time.Duration
	onSessionExpired func()
	dashboard        *DashboardCache
	logger           *slog.Logger

	refreshMu sync.Mutex
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the deadline of every single request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSessionExpired registers the hook called after a failed refresh,
// usually a redirect to the login screen.
func WithSessionExpired(f func()) Option {
	return func(c *Client) {
		c.onSessionExpired = f
	}
}

func WithDashboardCache(dc *DashboardCache) Option {
	return func(c *Client) {
		c.dashboard = dc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		tokens:    tokens,
		timeout:   DefaultTimeout,
		dashboard: NewDashboardCache(nil, DefaultDashboardTTL),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends an authenticated request and decodes the envelope's data into
// out. A 401 triggers one token refresh and one retry of the request.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeData(data, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = sonic.Marshal(body)
		if err != nil {
			return nil, errors.New("marshalling request body error: " + err.Error())
		}
	}
	tokens, _ := c.tokens.Tokens()
	status, respBody, err := c.send(ctx, method, path, payload, tokens.AccessToken)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized && !strings.HasPrefix(path, authPrefix) {
		if err := c.refresh(ctx, tokens.AccessToken); err != nil {
			return nil, err
		}
		tokens, _ = c.tokens.Tokens()
		status, respBody, err = c.send(ctx, method, path, payload, tokens.AccessToken)
		if err != nil {
			return nil, err
		}
	}
	data, err := unwrap(status, respBody)
	if err != nil {
		return nil, err
	}
	if method != http.MethodGet && c.dashboard != nil {
		c.dashboard.Invalidate(ctx)
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, accessToken string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, errors.New("building request error: " + err.Error())
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, errors.New(method + " " + path + " error: " + err.Error())
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.New("reading response error: " + err.Error())
	}
	return resp.StatusCode, respBody, nil
}

// refresh exchanges the refresh token for a new pair. A refresh done by a
// concurrent request in the meantime is reused.
func (c *Client) refresh(ctx context.Context, staleAccess string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	tokens, ok := c.tokens.Tokens()
	if ok && tokens.AccessToken != staleAccess {
		return nil
	}
	if !ok || tokens.RefreshToken == "" {
		return c.expire("no refresh token")
	}
	payload, err := sonic.Marshal(map[string]string{"refresh_token": tokens.RefreshToken})
	if err != nil {
		return errors.New("marshalling refresh request error: " + err.Error())
	}
	status, respBody, err := c.send(ctx, http.MethodPost, refreshPath, payload, "")
	if err != nil {
		return c.expire(err.Error())
	}
	data, err := unwrap(status, respBody)
	if err != nil {
		return c.expire(err.Error())
	}
	var fresh Tokens
	if err := decodeData(data, &fresh); err != nil || fresh.AccessToken == "" {
		return c.expire("malformed refresh response")
	}
	c.tokens.Save(fresh)
	c.logger.Debug("session refreshed")
	return nil
}

func (c *Client) expire(reason string) error {
	c.logger.Warn("session expired", slog.String("reason", reason))
	c.tokens.Clear()
	if c.dashboard != nil {
		c.dashboard.Invalidate(context.Background())
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return errorvalues.ErrSessionExpired
}

// unwrap returns the raw "data" of a successful envelope.
func unwrap(status int, body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		if status >= 200 && status < 300 && len(bytes.TrimSpace(body)) == 0 {
			return nil, nil
		}
		return nil, &APIError{
			Status:  status,
			Message: http.StatusText(status),
			Details: errorvalues.ErrUnexpectedResponse.Error(),
		}
	}
	res := gjson.ParseBytes(body)
	if status < 200 || status >= 300 || !res.Get("success").Bool() {
		return nil, &APIError{
			Status:  status,
			Message: res.Get("message").String(),
			Details: res.Get("error").String(),
		}
	}
	data := res.Get("data")
	if !data.Exists() {
		return nil, nil
	}
	return []byte(data.Raw), nil
}

func decodeData(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return errors.Join(errorvalues.ErrUnexpectedResponse, errors.New("decoding response data error: "+err.Error()))
	}
	return nil
}

// Login stores the issued tokens in the client's TokenStore.
func (c *Client) Login(ctx context.Context, name, password string) (Tokens, error) {
	var tokens Tokens
	err := c.Do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"name":     name,
		"password": password,
	}, &tokens)
	if err != nil {
		return Tokens{}, err
	}
	c.tokens.Save(tokens)
	return tokens, nil
}

func (c *Client) Logout(ctx context.Context) {
	c.tokens.Clear()
	if c.dashboard != nil {
		c.dashboard.Invalidate(ctx)
	}
}

// Dashboard decodes the dashboard into out, serving it from the cache while
// it is fresh.
func (c *Client) Dashboard(ctx context.Context, out any) error {
	if c.dashboard != nil {
		if data, ok := c.dashboard.Get(ctx); ok {
			return decodeData(data, out)
		}
	}
	data, err := c.do(ctx, http.MethodGet, "/api/v1/dashboard", nil)
	if err != nil {
		return err
	}
	if c.dashboard != nil {
		c.dashboard.Set(ctx, data)
	}
	return decodeData(data, out)
}
