package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/billomat/internal/auth"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

func TestCredentials_Apply(t *testing.T) {
	t.Parallel()

	t.Run("api key only", func(t *testing.T) {
		t.Parallel()

		header := make(http.Header)

		err := auth.Credentials{APIKey: "secret-key"}.Apply(header)
		require.NoError(t, err)
		assert.Equal(t, "secret-key", header.Get("X-BillomatApiKey"))
		assert.Empty(t, header.Get("X-AppId"))
		assert.Empty(t, header.Get("X-AppSecret"))
	})

	t.Run("with app credentials", func(t *testing.T) {
		t.Parallel()

		header := make(http.Header)

		err := auth.Credentials{APIKey: "secret-key", AppID: "app", AppSecret: "app-secret"}.Apply(header)
		require.NoError(t, err)
		assert.Equal(t, "app", header.Get("X-AppId"))
		assert.Equal(t, "app-secret", header.Get("X-AppSecret"))
	})

	t.Run("incomplete app credentials are not sent", func(t *testing.T) {
		t.Parallel()

		header := make(http.Header)

		err := auth.Credentials{APIKey: "secret-key", AppID: "app"}.Apply(header)
		require.NoError(t, err)
		assert.Empty(t, header.Get("X-AppId"))
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Parallel()

		err := auth.Credentials{}.Apply(make(http.Header))
		assert.ErrorIs(t, err, auth.ErrNoAPIKey)
	})
}

func TestCredentials_Interceptor(t *testing.T) {
	t.Parallel()

	credentials := auth.FromConfig(billomat.NewConfig("acme", "secret-key"))
	req := &billomat.Request{Method: http.MethodGet, Path: "/api/clients"}

	err := credentials.Interceptor()(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", req.Headers.Get("X-BillomatApiKey"))
}

func TestRedact(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "******-key", auth.Redact("secret-key"))
	assert.Equal(t, "***", auth.Redact("abc"))
	assert.Empty(t, auth.Redact(""))

	header := make(http.Header)
	header.Set("X-BillomatApiKey", "secret-key")
	header.Set("Accept", "application/json")

	redacted := auth.RedactHeaders(header)
	assert.Equal(t, "******-key", redacted.Get("X-BillomatApiKey"))
	assert.Equal(t, "application/json", redacted.Get("Accept"))
	assert.Equal(t, "secret-key", header.Get("X-BillomatApiKey"))
}
