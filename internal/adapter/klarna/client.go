package klarna

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

const (
	userAgent         = "klarnapay/1.0"
	idempotencyHeader = "Klarna-Idempotency-Key"
	defaultTimeout    = 10 * time.Second
)

// API is the subset of Klarna REST API the payment manager talks to.
type API interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*SessionCreated, error)
	UpdateSession(ctx context.Context, sessionID string, req *SessionRequest) error
	ReadSession(ctx context.Context, sessionID string) (*Session, error)
	AuthorizeOrder(ctx context.Context, authorizationToken string, payload OrderPayload) (*AuthorizedOrder, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	CancelOrder(ctx context.Context, orderID string) error
	AcknowledgeOrder(ctx context.Context, orderID, idempotencyKey string) error
	ReleaseRemainingAuthorization(ctx context.Context, orderID string) error
	CreateCapture(ctx context.Context, orderID string, req *CaptureRequest, idempotencyKey string) error
	CreateRefund(ctx context.Context, orderID string, req *RefundRequest, idempotencyKey string) error
}

// none marks endpoints without request or response body.
type none struct{}

// endpoint describes one REST resource operation: method, path pattern and body shapes.
type endpoint[Req, Resp any] struct {
	method string
	path   string
}

var (
	createSession    = endpoint[SessionRequest, SessionCreated]{http.MethodPost, "/payments/v1/sessions"}
	updateSession    = endpoint[SessionRequest, none]{http.MethodPost, "/payments/v1/sessions/%s"}
	readSession      = endpoint[none, Session]{http.MethodGet, "/payments/v1/sessions/%s"}
	authorizeOrder   = endpoint[OrderPayload, AuthorizedOrder]{http.MethodPost, "/payments/v1/authorizations/%s/order"}
	getOrder         = endpoint[none, Order]{http.MethodGet, "/ordermanagement/v1/orders/%s"}
	cancelOrder      = endpoint[none, none]{http.MethodPost, "/ordermanagement/v1/orders/%s/cancel"}
	acknowledgeOrder = endpoint[none, none]{http.MethodPost, "/ordermanagement/v1/orders/%s/acknowledge"}
	releaseAuth      = endpoint[none, none]{http.MethodPost, "/ordermanagement/v1/orders/%s/release-remaining-authorization"}
	createCapture    = endpoint[CaptureRequest, none]{http.MethodPost, "/ordermanagement/v1/orders/%s/captures"}
	createRefund     = endpoint[RefundRequest, none]{http.MethodPost, "/ordermanagement/v1/orders/%s/refunds"}
)

// Client implements API over HTTP with basic auth.
type Client struct {
	baseURL    *url.URL
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates Klarna client for an absolute base URL.
func NewClient(baseURL, username, password string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse klarna url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("klarna url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  parsed,
		username: username,
		password: password,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) CreateSession(ctx context.Context, req *SessionRequest) (*SessionCreated, error) {
	return call(ctx, c, createSession, req, nil)
}

func (c *Client) UpdateSession(ctx context.Context, sessionID string, req *SessionRequest) error {
	_, err := call(ctx, c, updateSession, req, nil, sessionID)
	return err
}

func (c *Client) ReadSession(ctx context.Context, sessionID string) (*Session, error) {
	return call(ctx, c, readSession, nil, nil, sessionID)
}

func (c *Client) AuthorizeOrder(ctx context.Context, authorizationToken string, payload OrderPayload) (*AuthorizedOrder, error) {
	return call(ctx, c, authorizeOrder, &payload, nil, authorizationToken)
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	return call(ctx, c, getOrder, nil, nil, orderID)
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	_, err := call(ctx, c, cancelOrder, nil, nil, orderID)
	return err
}

func (c *Client) AcknowledgeOrder(ctx context.Context, orderID, idempotencyKey string) error {
	_, err := call(ctx, c, acknowledgeOrder, nil, idempotency(idempotencyKey), orderID)
	return err
}

func (c *Client) ReleaseRemainingAuthorization(ctx context.Context, orderID string) error {
	_, err := call(ctx, c, releaseAuth, nil, nil, orderID)
	return err
}

func (c *Client) CreateCapture(ctx context.Context, orderID string, req *CaptureRequest, idempotencyKey string) error {
	_, err := call(ctx, c, createCapture, req, idempotency(idempotencyKey), orderID)
	return err
}

func (c *Client) CreateRefund(ctx context.Context, orderID string, req *RefundRequest, idempotencyKey string) error {
	_, err := call(ctx, c, createRefund, req, idempotency(idempotencyKey), orderID)
	return err
}

func idempotency(key string) http.Header {
	if key == "" {
		return nil
	}
	h := http.Header{}
	h.Set(idempotencyHeader, key)
	return h
}

// call performs a single request against endpoint e. Path arguments are escaped.
func call[Req, Resp any](ctx context.Context, c *Client, e endpoint[Req, Resp], body *Req, header http.Header, args ...string) (*Resp, error) {
	plain := make([]any, len(args))
	escaped := make([]any, len(args))
	for i, a := range args {
		plain[i] = a
		escaped[i] = url.PathEscape(a)
	}
	target := *c.baseURL
	target.Path = path.Join(c.baseURL.Path, fmt.Sprintf(e.path, plain...))
	target.RawPath = path.Join(c.baseURL.EscapedPath(), fmt.Sprintf(e.path, escaped...))

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, e.method, target.String(), reader)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var data errorResponse
		if len(raw) > 0 && json.Unmarshal(raw, &data) == nil {
			apiErr.Code = data.ErrorCode
			apiErr.Messages = data.ErrorMessages
			apiErr.CorrelationID = data.CorrelationID
		}
		c.logger.Error("klarna request failed",
			slog.String("method", e.method),
			slog.String("path", target.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("error_code", apiErr.Code),
			slog.String("correlation_id", apiErr.CorrelationID),
		)
		return nil, apiErr
	}

	out := new(Resp)
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if _, ok := any(out).(*none); ok {
		return out, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}
