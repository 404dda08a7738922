package finna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// APIClient talks to the Finna REST API
type APIClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *slog.Logger

	// progress, when set, receives a byte progress bar for each response body
	progress io.Writer
}

// Option configures an APIClient
type Option func(*APIClient)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(a *APIClient) { a.http = c }
}

// WithTimeout sets the request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(a *APIClient) { a.http.Timeout = d }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(a *APIClient) { a.userAgent = ua }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(a *APIClient) { a.logger = l }
}

// WithProgress shows a download progress bar on w
func WithProgress(w io.Writer) Option {
	return func(a *APIClient) { a.progress = w }
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: "finna-cli",
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiResponse struct {
	Status        string    `json:"status"`
	StatusMessage string    `json:"statusMessage"`
	ResultCount   int       `json:"resultCount"`
	Records       []*Record `json:"records"`
}

// Search fetches one result page
func (c *APIClient) Search(ctx context.Context, query string) (*ResultPage, error) {
	resp, err := c.get(ctx, "/search", query)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(resp.Records))
	for _, rec := range resp.Records {
		if rec != nil {
			records = append(records, rec)
		}
	}
	return &ResultPage{Records: records, ResultCount: resp.ResultCount}, nil
}

// Record fetches exactly one record
func (c *APIClient) Record(ctx context.Context, query string) (*Record, error) {
	resp, err := c.get(ctx, "/record", query)
	if err != nil {
		return nil, err
	}
	if len(resp.Records) != 1 || resp.Records[0] == nil {
		return nil, fmt.Errorf("%w: expected exactly one record, got %d", ErrParse, len(resp.Records))
	}
	return resp.Records[0], nil
}

func (c *APIClient) get(ctx context.Context, endpoint, query string) (*apiResponse, error) {
	url := c.baseURL + endpoint + "?" + query

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request", "url", url, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: API error: %s", ErrNetwork, resp.Status)
	}

	var body io.Reader = resp.Body
	if c.progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(c.progress),
			progressbar.OptionSetDescription("fetching"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		body = io.TeeReader(resp.Body, bar)
	}

	var result apiResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrParse, err)
	}
	if result.Status != "" && !strings.EqualFold(result.Status, "OK") {
		msg := result.StatusMessage
		if msg == "" {
			msg = result.Status
		}
		return nil, fmt.Errorf("%w: API error: %s", ErrNetwork, msg)
	}
	return &result, nil
}
