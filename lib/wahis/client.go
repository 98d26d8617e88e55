package wahis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"time"
	"wahis-export/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://wahis.woah.org/api/v1"

// fixed header set the WAHIS frontend sends on every request
var apiHeaders = map[string]string{
	"Accept":          "application/json",
	"Content-Type":    "application/json",
	"accept-language": "en",
	"env":             "PRD",
	"type":            "REQUEST",
	"token":           "#PIPRD202006#",
	"clientId":        "OIEwebsite",
}

// StatusError is a permanent request failure: an HTTP status that survived
// (or was excluded from) the retry policy.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// defaults to DefaultBaseURL
	BaseURL string
	// per-request timeout, defaults to 30s
	Timeout time.Duration
	// total attempts per request including the first, defaults to 4
	RetryAttempts int
	// politeness limit, defaults to 2 req/s
	RequestsPerSecond float64
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 4
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 2
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeaders(apiHeaders)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(opts.Timeout)

	// network failures, bot-detection 403s and 5xx are transient; any
	// other status falls through to the caller without another attempt
	client.SetRetryCount(opts.RetryAttempts - 1)
	client.SetRetryWaitTime(time.Millisecond * 500)
	client.SetRetryMaxWaitTime(time.Second * 8)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return res.StatusCode() == 403 || res.StatusCode() >= 500
	})

	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 2)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, "wahis/http")

	return &Client{http: client}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("language", "en").
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return decodeResponse("GET", path, res, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("language", "en").
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	return decodeResponse("POST", path, res, out)
}

func decodeResponse(method, path string, res *resty.Response, out any) error {
	if res.IsError() {
		return &StatusError{Method: method, Path: path, Code: res.StatusCode()}
	}
	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
