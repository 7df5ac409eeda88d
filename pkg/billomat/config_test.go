package billomat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	config := billomat.NewConfig("acme", "key")

	assert.True(t, config.Secure)
	assert.True(t, config.IgnoreUnknownProperties)
	assert.Equal(t, billomat.DefaultHTTPTimeout, config.HTTPTimeout)
	assert.Equal(t, "https://acme.billomat.net", config.Endpoint())
	require.NoError(t, config.Validate())

	config.Secure = false
	assert.Equal(t, "http://acme.billomat.net", config.Endpoint())

	config.BaseURL = "http://127.0.0.1:8080"
	assert.Equal(t, "http://127.0.0.1:8080", config.Endpoint())
	require.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(config *billomat.Config)
		field   string
		message string
	}{
		{
			name:    "missing billomat id",
			mutate:  func(config *billomat.Config) { config.BillomatID = "" },
			field:   "billomat_id",
			message: "billomat_id not configured",
		},
		{
			name:   "malformed billomat id",
			mutate: func(config *billomat.Config) { config.BillomatID = "acme corp" },
			field:  "billomat_id",
		},
		{
			name:    "missing api key",
			mutate:  func(config *billomat.Config) { config.APIKey = "" },
			field:   "api_key",
			message: "api_key not configured",
		},
		{
			name:   "app id without secret",
			mutate: func(config *billomat.Config) { config.AppID = "app" },
			field:  "app_secret",
		},
		{
			name:   "app secret without id",
			mutate: func(config *billomat.Config) { config.AppSecret = "secret" },
			field:  "app_id",
		},
		{
			name:   "malformed base url",
			mutate: func(config *billomat.Config) { config.BaseURL = "not a url" },
			field:  "base_url",
		},
		{
			name:   "negative timeout",
			mutate: func(config *billomat.Config) { config.HTTPTimeout = -time.Second },
			field:  "http_timeout",
		},
		{
			name:   "negative rate",
			mutate: func(config *billomat.Config) { config.RequestsPerSecond = -1 },
			field:  "requests_per_second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := billomat.NewConfig("acme", "key")
			tt.mutate(config)

			err := config.Validate()
			configErr := &billomat.ConfigurationError{}
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)

			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestConfig_ValidateReportsFirstProblem(t *testing.T) {
	t.Parallel()

	config := billomat.NewConfig("", "")
	config.RequestsPerSecond = -1

	configErr := &billomat.ConfigurationError{}
	require.ErrorAs(t, config.Validate(), &configErr)
	assert.Equal(t, "billomat_id", configErr.Field)
}

func TestConfigFromMap(t *testing.T) {
	t.Parallel()

	t.Run("weakly typed values", func(t *testing.T) {
		t.Parallel()

		config, err := billomat.ConfigFromMap(map[string]interface{}{
			"billomat_id":         "acme",
			"api_key":             "key",
			"secure":              "false",
			"http_timeout":        "10s",
			"requests_per_second": "5",
			"debug":               1,
		})
		require.NoError(t, err)

		assert.Equal(t, "acme", config.BillomatID)
		assert.False(t, config.Secure)
		assert.Equal(t, 10*time.Second, config.HTTPTimeout)
		assert.Equal(t, 5, config.RequestsPerSecond)
		assert.True(t, config.Debug)
		assert.True(t, config.IgnoreUnknownProperties)
		require.NoError(t, config.Validate())
	})

	t.Run("keeps defaults", func(t *testing.T) {
		t.Parallel()

		config, err := billomat.ConfigFromMap(map[string]interface{}{"billomat_id": "acme"})
		require.NoError(t, err)
		assert.True(t, config.Secure)
		assert.Equal(t, billomat.DefaultHTTPTimeout, config.HTTPTimeout)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := billomat.ConfigFromMap(map[string]interface{}{"billomat_id": "acme", "colour": "blue"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "colour")
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		t.Parallel()

		_, err := billomat.ConfigFromMap(map[string]interface{}{"http_timeout": "soon"})
		require.Error(t, err)
	})
}
