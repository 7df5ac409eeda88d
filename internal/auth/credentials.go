// Package auth attaches Billomat credentials to outgoing requests.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// Static errors for err113 compliance.
var (
	ErrNoAPIKey = errors.New("no API key")
)

// Credentials identify the account and, optionally, a registered app.
type Credentials struct {
	APIKey    string
	AppID     string
	AppSecret string
}

// FromConfig extracts the credentials of a client configuration.
func FromConfig(config *billomat.Config) Credentials {
	return Credentials{
		APIKey:    config.APIKey,
		AppID:     config.AppID,
		AppSecret: config.AppSecret,
	}
}

// HasApp reports whether app credentials are present.
func (c Credentials) HasApp() bool {
	return c.AppID != "" && c.AppSecret != ""
}

// Apply sets the credential headers on header.
func (c Credentials) Apply(header http.Header) error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}

	header.Set(constants.APIKeyHeader, c.APIKey)

	if c.HasApp() {
		header.Set(constants.AppIDHeader, c.AppID)
		header.Set(constants.AppSecretHeader, c.AppSecret)
	}

	return nil
}

// Interceptor applies the credentials to every intercepted request.
func (c Credentials) Interceptor() billomat.RequestInterceptor {
	return func(ctx context.Context, req *billomat.Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		return c.Apply(req.Headers)
	}
}

// Redact masks a secret for logs, keeping the last four characters.
func Redact(secret string) string {
	const visible = 4

	if len(secret) <= visible {
		return strings.Repeat("*", len(secret))
	}

	return strings.Repeat("*", len(secret)-visible) + secret[len(secret)-visible:]
}

// RedactHeaders returns a copy of header with credential values masked.
func RedactHeaders(header http.Header) http.Header {
	redacted := header.Clone()

	for _, name := range []string{constants.APIKeyHeader, constants.AppSecretHeader} {
		if value := redacted.Get(name); value != "" {
			redacted.Set(name, Redact(value))
		}
	}

	return redacted
}
