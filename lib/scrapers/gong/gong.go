package gong

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"strconv"
	"sync"
	"time"

	"gongbridge/lib/telemetry"
	"gongbridge/services/session"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/publicsuffix"
)

var AuthenticationFailed = fmt.Errorf("authentication failed, session may be expired")
var RateLimited = fmt.Errorf("rate limit exceeded")

type ApiError struct {
	Status int
	Body   string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("api request failed: %d - %s", e.Status, e.Body)
}

type ClientOptions struct {
	// overrides the session's cell url, mostly useful for tests
	BaseUrl string
	// minimum spacing between requests, defaults to 100ms
	MinRequestInterval time.Duration
	// defaults to 30s
	Timeout time.Duration
}

type Client struct {
	http        *resty.Client
	baseUrlSet  bool
	session     *session.Session
	minInterval time.Duration

	mu                 sync.Mutex
	lastRequest        time.Time
	rateLimitRemaining int
	rateLimitReset     time.Time
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()

	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	client.SetRetryCount(3)
	client.SetRetryWaitTime(time.Second)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if res == nil {
			return false
		}
		return res.StatusCode() == 429 || res.StatusCode() >= 500
	})

	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "scrapers/gong/http")

	minInterval := opts.MinRequestInterval
	if minInterval == 0 {
		minInterval = time.Millisecond * 100
	}

	c := &Client{
		http:               client,
		minInterval:        minInterval,
		rateLimitRemaining: 1000,
	}
	if opts.BaseUrl != "" {
		client.SetBaseURL(opts.BaseUrl)
		c.baseUrlSet = true
	}
	return c, nil
}

// binds a harvested browser session to the client. all subsequent
// requests carry its cookies and hit its cell host.
func (c *Client) UseSession(ctx context.Context, s session.Session) error {
	ctx, span := tracer.Start(ctx, "UseSession")
	defer span.End()

	err := s.Validate(time.Now())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if !c.baseUrlSet {
		c.http.SetBaseURL(s.BaseUrl())
	}
	for k, v := range s.Headers(time.Now()) {
		c.http.SetHeader(k, v)
	}
	c.session = &s
	return nil
}

func (c *Client) Session() *session.Session {
	return c.session
}

func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	since := time.Since(c.lastRequest)
	if since < c.minInterval {
		time.Sleep(c.minInterval - since)
	}
	c.lastRequest = time.Now()
}

func (c *Client) recordRateLimit(res *resty.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := res.Header().Get("X-RateLimit-Remaining"); v != "" {
		remaining, err := strconv.Atoi(v)
		if err == nil {
			c.rateLimitRemaining = remaining
		}
	}
	if v := res.Header().Get("X-RateLimit-Reset"); v != "" {
		reset, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			c.rateLimitReset = time.Unix(reset, 0)
		}
	}
}

type RateLimitStatus struct {
	Remaining int
	Reset     time.Time
}

func (c *Client) RateLimitStatus() RateLimitStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return RateLimitStatus{
		Remaining: c.rateLimitRemaining,
		Reset:     c.rateLimitReset,
	}
}

func (c *Client) checkResponse(res *resty.Response) error {
	c.recordRateLimit(res)

	switch {
	case res.StatusCode() == 429:
		return RateLimited
	case res.StatusCode() == 401:
		return AuthenticationFailed
	case !res.IsSuccess():
		return &ApiError{Status: res.StatusCode(), Body: res.String()}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	if c.session == nil {
		return fmt.Errorf("%w: no session bound", session.InvalidSession)
	}
	c.throttle()

	req := c.http.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParams(params)
	}
	res, err := req.Get(path)
	if err != nil {
		return err
	}
	err = c.checkResponse(res)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(res.Body(), out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	if c.session == nil {
		return fmt.Errorf("%w: no session bound", session.InvalidSession)
	}
	c.throttle()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return err
	}
	err = c.checkResponse(res)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(res.Body(), out)
}
