// Package httpx is the outbound HTTP layer shared by every crawler
// component. Retries are handled here so business logic never sees a
// transient failure that a later attempt recovered from.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Response is the terminal outcome of a GET once retries are exhausted or
// a non-retryable status arrived. A non-2xx status is not an error at this
// layer; callers decide what it means.
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError reports a non-2xx response where the caller required success.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d fetching %s", e.Code, e.URL)
}

type Options struct {
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
	Limiter     *HostLimiter
	Logger      zerolog.Logger
}

type Client struct {
	hc          *http.Client
	userAgent   string
	maxAttempts int
	limiter     *HostLimiter
	log         zerolog.Logger
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	return &Client{
		hc:          &http.Client{Timeout: opts.Timeout},
		userAgent:   opts.UserAgent,
		maxAttempts: opts.MaxAttempts,
		limiter:     opts.Limiter,
		log:         opts.Logger,
	}
}

func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= 500
}

// Get fetches url with jittered exponential backoff across attempts.
// The returned error is a transport-level failure only: no response at all
// after every attempt. Any HTTP response, success or not, comes back as a
// Response.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	var out *Response

	attempt := 0
	op := func() error {
		attempt++
		if c.limiter != nil {
			if err := c.limiter.WaitURL(ctx, url); err != nil {
				return backoff.Permanent(err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		res, err := c.hc.Do(req)
		if err != nil {
			c.log.Debug().Str("url", url).Int("attempt", attempt).Err(err).Msg("fetch failed")
			return err
		}
		defer res.Body.Close()

		body, err := io.ReadAll(res.Body)
		if err != nil {
			c.log.Debug().Str("url", url).Int("attempt", attempt).Err(err).Msg("read body failed")
			return err
		}

		if retryableStatus(res.StatusCode) {
			c.log.Debug().Str("url", url).Int("status", res.StatusCode).Int("attempt", attempt).Msg("retryable status")
			return &StatusError{Code: res.StatusCode, URL: url}
		}

		out = &Response{StatusCode: res.StatusCode, Body: body}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 10 * time.Second

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxAttempts-1)), ctx))
	if err != nil {
		// Retries exhausted on a retryable status: surface it as a normal
		// response, not a transport failure.
		if se, ok := err.(*StatusError); ok {
			return &Response{StatusCode: se.Code}, nil
		}
		return nil, err
	}
	return out, nil
}

// Fetch is Get for callers that need a 2xx body and nothing else.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{Code: res.StatusCode, URL: url}
	}
	return res.Body, nil
}

// FetchDocument fetches url and parses the body as HTML.
func (c *Client) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", url, err)
	}
	return doc, nil
}

// FetchJSON fetches url and decodes the body into v.
func (c *Client) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := c.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode json from %s: %w", url, err)
	}
	return nil
}
