package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/hay-kot/critic/internal/core/logging"
)

const (
	defaultTimeout          = 2 * time.Minute
	defaultMaxResponseBytes = 4 << 20
	maxLoggedBody           = 200
)

// Reviewer produces a review outcome for a piece of code.
type Reviewer interface {
	Request(ctx context.Context, code string) Outcome
}

// Options configures a Client.
type Options struct {
	Endpoint         string
	Timeout          time.Duration // zero uses the default; the request is always bounded
	MaxResponseBytes int64
	Headers          map[string]string
	HTTPClient       *http.Client
}

// Client posts code to the review endpoint.
type Client struct {
	endpoint string
	timeout  time.Duration
	maxBytes int64
	headers  map[string]string
	http     *http.Client
	log      zerolog.Logger
}

type reviewRequest struct {
	Code string `json:"code"`
}

// NewClient creates a review client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxResponseBytes <= 0 {
		opts.MaxResponseBytes = defaultMaxResponseBytes
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	return &Client{
		endpoint: opts.Endpoint,
		timeout:  opts.Timeout,
		maxBytes: opts.MaxResponseBytes,
		headers:  opts.Headers,
		http:     opts.HTTPClient,
		log:      logging.Component("review"),
	}
}

// Endpoint returns the configured review URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Request sends one review request and waits for a single response. It never
// retries and never returns the raw error to the caller: every failure maps to
// Empty or Failed. Cancelling ctx or exceeding the timeout yields Failed.
func (c *Client) Request(ctx context.Context, code string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	outcome := c.do(ctx, code)

	ev := c.log.Info()
	if !outcome.OK() {
		ev = c.log.Warn().Err(outcome.Err)
		if errors.Is(outcome.Err, context.Canceled) {
			ev = c.log.Info().Err(outcome.Err)
		}
	}
	ev.Ctx(ctx).
		Str("endpoint", c.endpoint).
		Stringer("outcome", outcome.Kind).
		Int("code_bytes", len(code)).
		Dur("elapsed", time.Since(start)).
		Msg("review request finished")

	return outcome
}

func (c *Client) do(ctx context.Context, code string) Outcome {
	payload, err := json.Marshal(reviewRequest{Code: code})
	if err != nil {
		return Failed(fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Failed(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/markdown, text/plain, application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Failed(fmt.Errorf("sending request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return Failed(fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failed(&StatusError{StatusCode: resp.StatusCode, Body: excerpt(body)})
	}

	if int64(len(body)) > c.maxBytes {
		return Failed(ErrResponseTooLarge)
	}

	text, err := decodeReview(resp.Header.Get("Content-Type"), body)
	switch {
	case errors.Is(err, ErrMalformedBody):
		return Failed(err)
	case err != nil:
		return Empty(err)
	case strings.TrimSpace(text) == "":
		return Empty(ErrEmptyBody)
	default:
		return Success(text)
	}
}

// decodeReview extracts the review text from a response body. JSON responses
// must be a bare JSON string; other media types are taken as raw text.
func decodeReview(contentType string, body []byte) (string, error) {
	if !isJSON(contentType) {
		return string(body), nil
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return "", ErrEmptyBody
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrNotString, v)
	}
	return s, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// excerpt trims body to at most maxLoggedBody bytes without splitting a rune.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxLoggedBody {
		return s
	}
	cut := maxLoggedBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
