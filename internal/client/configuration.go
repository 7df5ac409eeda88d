package client

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fivetwenty-io/billomat/internal/auth"
	"github.com/fivetwenty-io/billomat/internal/codec"
	"github.com/fivetwenty-io/billomat/internal/http"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// runtime is what a successful Init builds. It never changes afterwards and
// holds its own copy of the configuration it was built from.
type runtime struct {
	config    billomat.Config
	transport *http.Client
	codec     *codec.Codec
	limiter   *billomat.RateLimiter
}

// Configuration owns the inputs of one client and builds its transport and
// codec on first use. Init is safe for concurrent callers: the first one
// validates and builds, the others wait and observe the same outcome.
type Configuration struct {
	config *billomat.Config
	logger billomat.Logger

	mu     sync.Mutex
	state  atomic.Pointer[runtime]
	builds atomic.Int32
}

// NewConfiguration wraps config. Nothing is validated until Init.
func NewConfiguration(config *billomat.Config) *Configuration {
	var logger billomat.Logger = billomat.NopLogger{}
	if config != nil && config.Logger != nil {
		logger = config.Logger
	}

	return &Configuration{
		config: config,
		logger: logger,
	}
}

// Init validates the configuration and builds the runtime once. A failed
// validation is not remembered: a later call validates again.
func (c *Configuration) Init() error {
	if c.state.Load() != nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Load() != nil {
		return nil
	}

	if c.config == nil {
		return billomat.ErrConfigRequired
	}

	snapshot := *c.config

	err := snapshot.Validate()
	if err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	c.state.Store(c.build(snapshot))
	c.builds.Add(1)

	c.logger.Debug("Billomat client initialized", map[string]interface{}{
		"endpoint": snapshot.Endpoint(),
		"strict":   !snapshot.IgnoreUnknownProperties,
	})

	return nil
}

func (c *Configuration) build(config billomat.Config) *runtime {
	state := &runtime{
		config: config,
		codec:  codec.New(codec.Options{IgnoreUnknownProperties: config.IgnoreUnknownProperties}),
	}

	chain := billomat.NewInterceptorChain()

	if config.Debug {
		chain.AddRequestInterceptor(billomat.LoggingInterceptor(c.logger)).
			AddResponseInterceptor(billomat.LoggingResponseInterceptor(c.logger))
	}

	if config.RequestsPerSecond > 0 {
		state.limiter = billomat.NewRateLimiter(config.RequestsPerSecond)
		chain.AddRequestInterceptor(state.limiter.Interceptor())
	}

	chain.Extend(config.Interceptors)

	options := []http.Option{
		http.WithLogger(c.logger),
		http.WithDebug(config.Debug),
		http.WithInterceptors(chain),
		http.WithHTTPClient(config.HTTPClient),
	}

	if config.HTTPTimeout > 0 && config.HTTPClient == nil {
		options = append(options, http.WithTimeout(config.HTTPTimeout))
	}

	if config.UserAgent != "" {
		options = append(options, http.WithUserAgent(config.UserAgent))
	}

	state.transport = http.NewClient(config.Endpoint(), auth.FromConfig(&state.config), options...)

	return state
}

func (c *Configuration) runtime() (*runtime, error) {
	state := c.state.Load()
	if state == nil {
		return nil, billomat.ErrNotInitialized
	}

	return state, nil
}

// Transport returns the transport built by Init.
func (c *Configuration) Transport() (*http.Client, error) {
	state, err := c.runtime()
	if err != nil {
		return nil, err
	}

	return state.transport, nil
}

// Codec returns the codec built by Init.
func (c *Configuration) Codec() (*codec.Codec, error) {
	state, err := c.runtime()
	if err != nil {
		return nil, err
	}

	return state.codec, nil
}

// Logger returns the configured logger, never nil.
func (c *Configuration) Logger() billomat.Logger {
	return c.logger
}

// Events returns the mutation event publisher captured by Init, or nil
// before Init.
func (c *Configuration) Events() billomat.EventPublisher {
	state := c.state.Load()
	if state == nil {
		return nil
	}

	return state.config.Events
}

// Builds returns how many times the runtime has been built.
func (c *Configuration) Builds() int {
	return int(c.builds.Load())
}

// Close stops the rate limiter, if any.
func (c *Configuration) Close() error {
	state := c.state.Load()
	if state != nil && state.limiter != nil {
		state.limiter.Stop()
	}

	return nil
}

// ensure initializes on first use and returns the runtime.
func (c *Configuration) ensure() (*runtime, error) {
	err := c.Init()
	if err != nil {
		return nil, err
	}

	return c.runtime()
}
