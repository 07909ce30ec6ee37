package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/pkg/payment"
)

// TokenSource supplies the bearer token of the logged-in user, or "".
type TokenSource interface {
	Token() string
}

// Client talks to the task-management REST backend.
type Client struct {
	baseURL string
	timeout time.Duration
	tokens  TokenSource
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, fiber.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, fiber.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	if err := c.do(ctx, fiber.MethodGet, "/api/organizations", nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (c *Client) GetOrganization(ctx context.Context, orgID string) (*Organization, error) {
	var org Organization
	if err := c.do(ctx, fiber.MethodGet, "/api/organizations/"+url.PathEscape(orgID), nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (c *Client) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	var org Organization
	if err := c.do(ctx, fiber.MethodPost, "/api/organizations", req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*payment.CheckoutSession, error) {
	var session payment.CheckoutSession
	if err := c.do(ctx, fiber.MethodPost, "/api/payments/checkout", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) PaymentStatus(ctx context.Context, sessionID string) (*payment.StatusResult, error) {
	var status payment.StatusResult
	if err := c.do(ctx, fiber.MethodGet, "/api/payments/status/"+url.PathEscape(sessionID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	a.Timeout(c.requestTimeout(ctx))
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	requestID := uuid.NewString()
	a.Set(fiber.HeaderXRequestID, requestID)

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			a.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	if body != nil {
		a.JSON(body)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	start := time.Now()
	code, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", code),
		zap.Duration("elapsed", time.Since(start)))

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return decodeError(code, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// requestTimeout caps the per-request timeout by the context deadline.
func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 && c.timeout > 0 {
		timeout = time.Millisecond
	}
	return timeout
}
