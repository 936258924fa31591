package elasticmq

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/wcharczuk/localsqs/internal/form"
	"github.com/wcharczuk/localsqs/internal/httputil"
)

// NewClient returns a new client for the ElasticMQ at the given endpoint.
func NewClient(endpoint string, options ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("elasticmq; invalid endpoint %q: %w", endpoint, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("elasticmq; invalid endpoint %q: scheme and host are required", endpoint)
	}
	c := Client{
		endpoint:  parsed,
		userAgent: DefaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		opt(&c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: httputil.Logged(http.DefaultTransport, c.logger),
		}
	}
	return &c, nil
}

// ClientOption is a function that mutates clients.
type ClientOption func(*Client)

// OptHTTPClient sets the http client requests are sent with.
func OptHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// OptLogger sets the client logger.
func OptLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// OptUserAgent sets the user agent sent with requests.
func OptUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// Client issues SQS query protocol requests to ElasticMQ.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Response is a successful ElasticMQ response.
type Response struct {
	StatusCode int
	Body       []byte
}

// String returns the response body.
func (r *Response) String() string {
	return string(r.Body)
}

// Endpoint returns the base url requests are resolved against.
func (c *Client) Endpoint() *url.URL {
	return c.endpoint
}

// Do flattens a payload and posts it as a form to a path resolved against the endpoint.
//
// Statuses outside 2xx are returned as an [*Error].
func (c *Client) Do(ctx context.Context, path string, payload form.Marshaler) (*Response, error) {
	target := c.endpoint.ResolveReference(&url.URL{Path: path})
	fields := form.Marshal(payload)
	c.logger.Debug("sending action",
		slog.String("action", payload.Action()),
		slog.String("url", target.String()),
		slog.Int("fields", len(fields)),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, fmt.Errorf("elasticmq; %s: %w", payload.Action(), err)
	}
	req.Header.Set(httputil.HeaderContentType, httputil.ContentTypeApplicationFormEncoded)
	req.Header.Set(httputil.HeaderUserAgent, c.userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elasticmq; %s: %w", payload.Action(), err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("elasticmq; %s: reading response: %w", payload.Action(), err)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{
			Action:     payload.Action(),
			StatusCode: res.StatusCode,
			Body:       string(body),
		}
	}
	return &Response{
		StatusCode: res.StatusCode,
		Body:       body,
	}, nil
}

func queuePath(queueName string) string {
	return "/queue/" + queueName
}
