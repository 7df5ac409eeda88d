//go:build integration

package integration

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
	"github.com/fivetwenty-io/billomat/pkg/bmclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	BillomatID string
	APIKey     string
	AppID      string
	AppSecret  string
	BaseURL    string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		BillomatID: os.Getenv("BILLOMAT_ID"),
		APIKey:     os.Getenv("BILLOMAT_API_KEY"),
		AppID:      os.Getenv("BILLOMAT_APP_ID"),
		AppSecret:  os.Getenv("BILLOMAT_APP_SECRET"),
		BaseURL:    os.Getenv("BILLOMAT_BASE_URL"),
		Verbose:    os.Getenv("BILLOMAT_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.BillomatID == "" || config.APIKey == "" {
		t.Skip("BILLOMAT_ID or BILLOMAT_API_KEY not set, skipping integration test")
	}
}

// NewAPI builds a client for the configured account. Integration tests stay
// below the account's rate limit.
func (config *TestConfig) NewAPI(t *testing.T) billomat.API {
	t.Helper()

	opts := []bmclient.Option{
		bmclient.WithDebug(config.Verbose),
		bmclient.WithRateLimit(2),
	}

	if config.AppID != "" {
		opts = append(opts, bmclient.WithApp(config.AppID, config.AppSecret))
	}

	if config.BaseURL != "" {
		opts = append(opts, bmclient.WithBaseURL(config.BaseURL))
	}

	api, err := bmclient.NewWithAPIKey(config.BillomatID, config.APIKey, opts...)
	require.NoError(t, err)
	require.NoError(t, api.Init())

	t.Cleanup(func() { _ = api.Close() })

	return api
}

// GenerateTestName generates a unique name for test resources
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// Cleanup deletes a resource when the test ends and reports failures other
// than an already removed resource.
func Cleanup(t *testing.T, name string, remove func() error) {
	t.Helper()

	t.Cleanup(func() {
		err := remove()
		if err != nil && !billomat.IsNotFound(err) {
			t.Logf("Warning: failed to clean up %s: %v", name, err)
		}
	})
}
