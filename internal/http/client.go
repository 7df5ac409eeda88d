// Package http is the Billomat transport: it sends encoded bodies, attaches
// credentials and maps failures to typed errors. It never retries.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"

	"github.com/fivetwenty-io/billomat/internal/auth"
	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// Request is a single API call. Body is an already encoded JSON document.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    []byte
	Headers map[string]string
}

// Response is the raw result of a call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests to one Billomat account.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	credentials  auth.Credentials
	userAgent    string
	logger       billomat.Logger
	debug        bool
	interceptors *billomat.InterceptorChain
	requestID    func() string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger billomat.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug logs every request and response.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to configure TLS
// or proxies.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *billomat.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithRequestIDs replaces the request id generator.
func WithRequestIDs(generate func() string) Option {
	return func(c *Client) {
		c.requestID = generate
	}
}

// NewClient creates a transport for baseURL.
func NewClient(baseURL string, credentials auth.Credentials, opts ...Option) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 0
	httpClient.Logger = nil
	httpClient.CheckRetry = neverRetry
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	httpClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  httpClient,
		credentials: credentials,
		userAgent:   constants.DefaultUserAgent,
		logger:      billomat.NopLogger{},
		requestID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// neverRetry surfaces every failure once; retry policy belongs to callers.
func neverRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req. Non-2xx responses are returned together with a
// *billomat.TransportError; failures without a response are
// *billomat.NetworkError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	intercepted := &billomat.Request{
		Method:    req.Method,
		Path:      req.Path,
		RequestID: c.requestID(),
		Headers:   make(http.Header),
		Body:      req.Body,
	}

	intercepted.Headers.Set("Accept", constants.ContentTypeJSON)
	intercepted.Headers.Set("User-Agent", c.userAgent)
	intercepted.Headers.Set(constants.RequestIDHeader, intercepted.RequestID)

	if len(req.Body) > 0 {
		intercepted.Headers.Set("Content-Type", constants.ContentTypeJSON)
	}

	err := c.credentials.Apply(intercepted.Headers)
	if err != nil {
		return nil, fmt.Errorf("applying credentials: %w", err)
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	fullURL := c.baseURL + intercepted.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body interface{}
	if len(intercepted.Body) > 0 {
		body = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, intercepted.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     intercepted.Method,
			"url":        fullURL,
			"request_id": intercepted.RequestID,
			"headers":    auth.RedactHeaders(intercepted.Headers),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, c.fail(ctx, intercepted, fullURL, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.fail(ctx, intercepted, fullURL, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":     resp.StatusCode,
			"request_id": intercepted.RequestID,
			"duration":   time.Since(start).String(),
			"size":       len(respBody),
		})
	}

	var callErr error
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		callErr = &billomat.TransportError{
			Method:     intercepted.Method,
			Path:       intercepted.Path,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Messages:   ParseErrorMessages(respBody),
		}
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &billomat.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       respBody,
		Error:      callErr,
	})
	if err != nil && callErr == nil {
		callErr = err
	}

	return resp, callErr
}

func (c *Client) fail(ctx context.Context, req *billomat.Request, fullURL string, err error) error {
	var callErr error
	ctxErr := ctx.Err()

	switch {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		callErr = &billomat.NetworkError{Method: req.Method, URL: fullURL, Err: ctxErr}
	case ctxErr != nil:
		callErr = fmt.Errorf("%s %s: %w", req.Method, req.Path, ctxErr)
	default:
		callErr = &billomat.NetworkError{Method: req.Method, URL: fullURL, Err: unwrapURLError(err)}
	}

	_ = c.interceptors.ExecuteResponseInterceptors(ctx, req, &billomat.Response{Error: callErr})

	return callErr
}

func unwrapURLError(err error) error {
	urlErr := &url.Error{}
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}

	return err
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body []byte) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

type errorBody struct {
	Errors struct {
		Error jsoniter.RawMessage `json:"error"`
	} `json:"errors"`
}

// ParseErrorMessages extracts {"errors": {"error": ...}} where error is a
// string or a list of strings. Unparseable bodies yield no messages.
func ParseErrorMessages(body []byte) []string {
	var parsed errorBody

	err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &parsed)
	if err != nil || len(parsed.Errors.Error) == 0 {
		return nil
	}

	var single string

	err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(parsed.Errors.Error, &single)
	if err == nil {
		return []string{single}
	}

	var multiple []string

	err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(parsed.Errors.Error, &multiple)
	if err == nil {
		return multiple
	}

	return nil
}
