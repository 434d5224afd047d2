package client

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"net/http"
	"time"
)

// Client issues JSON requests against the backend REST API. out may be nil when the
// response body is not needed.
type Client interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body interface{}, out interface{}) error
	Put(ctx context.Context, path string, body interface{}, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

type RestyClient struct {
	rc     *resty.Client
	logger *zap.Logger
}

func NewRestyClient(cfg Config, logger *zap.Logger) *RestyClient {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())
	if cfg.Transport != nil {
		rc.SetTransport(cfg.Transport)
	}
	return &RestyClient{
		rc:     rc,
		logger: logger,
	}
}

func (c *RestyClient) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *RestyClient) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *RestyClient) Put(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *RestyClient) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *RestyClient) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	out interface{},
) error {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error(
			"Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		statusErr := newStatusError(method, path, resp.StatusCode(), resp.Body())
		c.logger.Error(
			"Backend returned an error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.String("message", statusErr.Message),
		)
		return statusErr
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		c.logger.Error("Unable to decode backend response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w from %s %s: %v", ErrDecodeResponse, method, path, err)
	}
	return nil
}
