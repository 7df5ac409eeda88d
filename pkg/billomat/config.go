package billomat

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/mitchellh/mapstructure"
)

const (
	// DefaultHTTPTimeout bounds every request unless the context expires first.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultPerPage is the page size used by List when the caller does not
	// choose one.
	DefaultPerPage = 100

	// MaxPerPage is the largest page size the service accepts.
	MaxPerPage = 1000
)

var billomatIDPattern = regexp.MustCompile(`^(?i)[a-z0-9][a-z0-9-]*$`)

// Config holds the inputs of a client. Build it with NewConfig or
// ConfigFromMap so that defaults are applied; a zero Config talks plain HTTP
// and rejects unknown response fields.
type Config struct {
	// BillomatID is the account name, the first label of <id>.billomat.net.
	BillomatID string `mapstructure:"billomat_id"`
	// APIKey is sent as X-BillomatApiKey with every request.
	APIKey string `mapstructure:"api_key"`
	// AppID and AppSecret identify a registered app. Both or neither.
	AppID     string `mapstructure:"app_id"`
	AppSecret string `mapstructure:"app_secret"`
	// Secure selects https. Defaults to true.
	Secure bool `mapstructure:"secure"`
	// IgnoreUnknownProperties skips response fields the entity types do not
	// know. Defaults to true; false fails decoding with a DecodeError.
	IgnoreUnknownProperties bool `mapstructure:"ignore_unknown_properties"`

	// BaseURL replaces the derived https://<id>.billomat.net endpoint.
	BaseURL           string        `mapstructure:"base_url"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	Debug             bool          `mapstructure:"debug"`
	RequestsPerSecond int           `mapstructure:"requests_per_second"`

	Logger       Logger            `mapstructure:"-"`
	Events       EventPublisher    `mapstructure:"-"`
	HTTPClient   *http.Client      `mapstructure:"-"`
	Interceptors *InterceptorChain `mapstructure:"-"`
}

// NewConfig returns a configuration for the given account with defaults
// applied.
func NewConfig(billomatID, apiKey string) *Config {
	return &Config{
		BillomatID:              billomatID,
		APIKey:                  apiKey,
		Secure:                  true,
		IgnoreUnknownProperties: true,
		HTTPTimeout:             DefaultHTTPTimeout,
	}
}

// ConfigFromMap decodes settings such as those read from a config file or
// environment. Values are weakly typed ("false", "30s" and 5 are accepted
// where a bool, duration or int is expected).
func ConfigFromMap(values map[string]interface{}) (*Config, error) {
	config := NewConfig("", "")

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           config,
	})
	if err != nil {
		return nil, fmt.Errorf("creating config decoder: %w", err)
	}

	err = decoder.Decode(values)
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return config, nil
}

// Endpoint returns the base URL requests are sent to.
func (c *Config) Endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}

	scheme := "http"
	if c.Secure {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s.billomat.net", scheme, c.BillomatID)
}

// Validate reports the first missing or malformed value as a
// *ConfigurationError.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
		rules []validation.Rule
	}{
		{"billomat_id", c.BillomatID, []validation.Rule{validation.Required, validation.Match(billomatIDPattern)}},
		{"api_key", c.APIKey, []validation.Rule{validation.Required}},
	}

	for _, check := range required {
		err := validation.Validate(check.value, check.rules...)
		if err != nil {
			return configurationError(check.field, check.value, err)
		}
	}

	if (c.AppID == "") != (c.AppSecret == "") {
		field := "app_secret"
		if c.AppID == "" {
			field = "app_id"
		}

		return &ConfigurationError{Field: field, Reason: "must be set together with app_id and app_secret"}
	}

	err := validation.Validate(c.BaseURL, is.URL)
	if err != nil {
		return &ConfigurationError{Field: "base_url", Reason: err.Error()}
	}

	err = validation.Validate(int64(c.HTTPTimeout), validation.Min(int64(0)))
	if err != nil {
		return &ConfigurationError{Field: "http_timeout", Reason: err.Error()}
	}

	err = validation.Validate(c.RequestsPerSecond, validation.Min(0))
	if err != nil {
		return &ConfigurationError{Field: "requests_per_second", Reason: err.Error()}
	}

	return nil
}

func configurationError(field, value string, err error) error {
	if value == "" {
		return &ConfigurationError{Field: field}
	}

	return &ConfigurationError{Field: field, Reason: err.Error()}
}
