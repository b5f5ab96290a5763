// Package raynet provides the HTTP client for the Raynet CRM API v2.
package raynet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"offer_summary_backend/platform/config"
	"offer_summary_backend/platform/logger"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

const (
	headerInstance = "X-Instance-Name"
	retryBase      = 200 * time.Millisecond
	retryCap       = 5 * time.Second
	maxErrorBody   = 1024
)

// ErrNotFound is returned when the CRM reports that a record does not exist.
var ErrNotFound = errors.New("raynet: record not found")

// Client is the HTTP client for the Raynet API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	instance   string
	username   string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries uint64
	log        *logger.Logger
}

// New creates a new Raynet API client.
func New(cfg config.RaynetConfig, log *logger.Logger) *Client {
	limit := rate.Inf
	if cfg.GetRaynetRPS() > 0 {
		limit = rate.Limit(cfg.GetRaynetRPS())
	}
	timeout := cfg.GetRaynetTimeout()
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxRetries := cfg.GetRaynetMaxRetries()
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.GetRaynetBaseURL(),
		instance:   cfg.GetRaynetInstance(),
		username:   cfg.GetRaynetUsername(),
		apiKey:     cfg.GetRaynetAPIKey(),
		limiter:    rate.NewLimiter(limit, max(1, cfg.GetRaynetMaxConcurrency())),
		maxRetries: uint64(maxRetries),
		log:        log,
	}
}

// GetOffer fetches an offer with its items.
func (c *Client) GetOffer(ctx context.Context, id int64) (*Offer, error) {
	var out Offer
	if err := c.get(ctx, fmt.Sprintf("/offer/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches a product with its custom fields.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := c.get(ctx, fmt.Sprintf("/product/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCompany fetches a company (the buyer organization of an offer).
func (c *Client) GetCompany(ctx context.Context, id int64) (*Company, error) {
	var out Company
	if err := c.get(ctx, fmt.Sprintf("/company/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPerson fetches a person (offer owner or buyer contact).
func (c *Client) GetPerson(ctx context.Context, id int64) (*Person, error) {
	var out Person
	if err := c.get(ctx, fmt.Sprintf("/person/%d/", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	backoff := retry.WithMaxRetries(c.maxRetries,
		retry.WithCappedDuration(retryCap,
			retry.WithJitterPercent(20, retry.NewExponential(retryBase))))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		return c.doRequest(ctx, path, out)
	})
}

// doRequest performs one attempt. Errors worth retrying are wrapped with retry.RetryableError.
func (c *Client) doRequest(ctx context.Context, path string, out interface{}) error {
	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.instance != "" {
		req.Header.Set(headerInstance, c.instance)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("raynet request failed", "error", err, "path", path)
		return retry.RetryableError(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Success - continue to decode
	case resp.StatusCode == http.StatusNotFound:
		c.log.Debug("raynet record not found", "path", path)
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.log.Error("raynet unauthorized", "status", resp.StatusCode, "path", path)
		return fmt.Errorf("unauthorized: check RAYNET_USERNAME, RAYNET_API_KEY and RAYNET_INSTANCE")
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		c.log.Warn("raynet upstream error", "status", resp.StatusCode, "path", path)
		return retry.RetryableError(fmt.Errorf("upstream error: status %d", resp.StatusCode))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Error("raynet request rejected", "status", resp.StatusCode, "path", path, "body", string(body))
		return fmt.Errorf("request rejected: status %d", resp.StatusCode)
	}

	env := envelope[json.RawMessage]{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Error("raynet decode failed", "error", err, "path", path)
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("raynet error: %s", env.Error)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.log.Error("raynet decode failed", "error", err, "path", path)
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
