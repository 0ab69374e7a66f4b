package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=quote_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultBaseURL = "http://127.0.0.1:8002"

// Client is a client for the pricing/schedule API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// userAgent is sent with each request.
	userAgent string
}

// ClientOption is a configuration option for the API client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new API client.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: newHTTPClient(10 * time.Second),
		userAgent:  "fairfix-site/1.0",
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// newHTTPClient returns an http.Client with sane transport defaults.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   50,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// QuotesQuery is the query for the /quotes endpoint. Fields arrive trimmed.
type QuotesQuery struct {
	Service string
	Make    string
	Model   string
	Year    string
	ZipCode string
}

// QuotesResponse is the success body of /quotes. Missing fields decode to
// their zero values and are tolerated, not treated as errors.
type QuotesResponse struct {
	Service string     `json:"service"`
	Quotes  []Quote    `json:"quotes"`
	Center  *MapCenter `json:"center"`
}

// Quotes fetches shop quotes for a service on a vehicle near a ZIP code.
// A non-2xx status yields a *RequestError; anything else that fails yields
// an *UnknownError.
func (c *Client) Quotes(ctx context.Context, q QuotesQuery) (*QuotesResponse, error) {
	params := url.Values{}
	params.Set("service_name", q.Service)
	params.Set("make", q.Make)
	params.Set("model", q.Model)
	params.Set("year", q.Year)
	params.Set("zip_code", q.ZipCode)

	var res QuotesResponse
	if err := c.get(ctx, "/quotes", params, msgQuotesFailed, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ScheduleQuery is the query for the /schedule endpoint.
type ScheduleQuery struct {
	Make    string
	Model   string
	Year    string
	Mileage string
}

// Schedule fetches upcoming maintenance items for a vehicle at a mileage.
// A JSON body of null decodes to a nil slice; callers treat that as empty.
func (c *Client) Schedule(ctx context.Context, q ScheduleQuery) ([]ScheduleItem, error) {
	params := url.Values{}
	params.Set("make", q.Make)
	params.Set("model", q.Model)
	params.Set("year", q.Year)
	params.Set("mileage", q.Mileage)

	var items []ScheduleItem
	if err := c.get(ctx, "/schedule", params, msgScheduleFailed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, failMsg string, out interface{}) error {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &UnknownError{Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnknownError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: failMsg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UnknownError{Cause: err}
	}
	return nil
}
