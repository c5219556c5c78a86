package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/academy-console/pkg/errors"
	"github.com/noah-isme/academy-console/pkg/metrics"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means no session; the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource, mostly useful in tests.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// Client is the single transport shared by all resource clients. It owns the
// concerns the backend contract leaves messy: bearer injection, request ids,
// envelope-or-bare response normalisation and error mapping.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     TokenSource
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	HTTPClient *http.Client
}

// NewClient constructs the transport with sane defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    httpClient,
		tokens:  tokens,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// errorBody is the `{"message": ...}` shape error responses carry.
type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, resource, method, path string, body, out interface{}) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, body, out)
	if c.metrics != nil {
		c.metrics.ObserveRequest(resource, method, outcomeOf(err), time.Since(start))
	}

	logFields := []zap.Field{
		zap.String("resource", resource),
		zap.String("method", method),
		zap.String("path", path),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		c.logger.Debug("api_request_failed", append(logFields, zap.Error(err))...)
		return err
	}
	c.logger.Debug("api_request", logFields...)
	return nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrDecode.Code, 0, "encode request payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, 0, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, 0, appErrors.ErrNetwork.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, 0, "read response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapHTTPError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := decodeBody(raw, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrDecode.Code, 0, appErrors.ErrDecode.Message)
	}
	return nil
}

func (c *Client) mapHTTPError(status int, raw []byte) error {
	message := serverMessage(raw)
	switch status {
	case http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrSessionExpired, message)
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case http.StatusBadRequest:
		return appErrors.Clone(appErrors.ErrValidation, message)
	default:
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", status)
		}
		return appErrors.New(appErrors.ErrServer.Code, status, message)
	}
}

// serverMessage pulls the human-readable message field out of an error body.
func serverMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}

// decodeBody normalises the two response shapes the backend uses: the payload
// directly, or wrapped as `{"data": ...}`. This is the only place in the
// codebase that knows about the envelope.
func decodeBody(raw []byte, out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}
	return json.Unmarshal(raw, out)
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	e := appErrors.FromError(err)
	switch e.Code {
	case appErrors.ErrNetwork.Code:
		return "network"
	case appErrors.ErrSessionExpired.Code:
		return "unauthorized"
	default:
		return "error"
	}
}
