package bmclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fivetwenty-io/billomat/internal/client"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// Option adjusts a configuration before the client is built.
type Option func(*billomat.Config)

// WithLogger sets the logger.
func WithLogger(logger billomat.Logger) Option {
	return func(config *billomat.Config) {
		config.Logger = logger
	}
}

// WithDebug logs every request and response at debug level.
func WithDebug(debug bool) Option {
	return func(config *billomat.Config) {
		config.Debug = debug
	}
}

// WithHTTPTimeout bounds every request.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(config *billomat.Config) {
		config.HTTPTimeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(config *billomat.Config) {
		config.HTTPClient = httpClient
	}
}

// WithRateLimit admits at most requestsPerSecond requests per second.
func WithRateLimit(requestsPerSecond int) Option {
	return func(config *billomat.Config) {
		config.RequestsPerSecond = requestsPerSecond
	}
}

// WithStrictDecoding fails decoding when a response carries fields the
// entity types do not declare.
func WithStrictDecoding() Option {
	return func(config *billomat.Config) {
		config.IgnoreUnknownProperties = false
	}
}

// WithEvents publishes an event after every successful mutation.
func WithEvents(publisher billomat.EventPublisher) Option {
	return func(config *billomat.Config) {
		config.Events = publisher
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *billomat.InterceptorChain) Option {
	return func(config *billomat.Config) {
		config.Interceptors = chain
	}
}

// WithBaseURL sends requests to url instead of https://<id>.billomat.net.
func WithBaseURL(url string) Option {
	return func(config *billomat.Config) {
		config.BaseURL = url
	}
}

// WithApp identifies a registered app.
func WithApp(appID, appSecret string) Option {
	return func(config *billomat.Config) {
		config.AppID = appID
		config.AppSecret = appSecret
	}
}

// New creates a Billomat API client. The configuration is validated on first
// use or by Init.
func New(config *billomat.Config, opts ...Option) (billomat.API, error) {
	if config == nil {
		return nil, billomat.ErrConfigRequired
	}

	for _, opt := range opts {
		opt(config)
	}

	return client.New(config), nil
}

// NewWithAPIKey creates a client for an account from its id and API key.
func NewWithAPIKey(billomatID, apiKey string, opts ...Option) (billomat.API, error) {
	return New(billomat.NewConfig(billomatID, apiKey), opts...)
}

// NewFromMap creates a client from loosely typed settings such as those read
// from a config file. Unknown keys are rejected.
func NewFromMap(values map[string]interface{}, opts ...Option) (billomat.API, error) {
	config, err := billomat.ConfigFromMap(values)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	return New(config, opts...)
}

// NewValidated creates a client and initializes it immediately, so an invalid
// configuration fails here instead of on first use.
func NewValidated(config *billomat.Config, opts ...Option) (billomat.API, error) {
	api, err := New(config, opts...)
	if err != nil {
		return nil, err
	}

	err = api.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return api, nil
}
