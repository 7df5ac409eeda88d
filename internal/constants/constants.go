package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Billomat endpoint and headers.
const (
	// APIKeyHeader carries the account API key.
	APIKeyHeader = "X-BillomatApiKey"

	// AppIDHeader carries the id of a registered app.
	AppIDHeader = "X-AppId"

	// AppSecretHeader carries the secret of a registered app.
	AppSecretHeader = "X-AppSecret"

	// RequestIDHeader correlates client logs with a request.
	RequestIDHeader = "X-Request-Id"

	// ContentTypeJSON is sent and accepted for every body.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent identifies the library.
	DefaultUserAgent = "billomat-go/" + Version
)

// Version of the library and CLI.
const Version = "0.1.0"

// Retry defaults of the CLI wrapper. The library itself never retries.
const (
	// DefaultCLIRetries is the number of extra attempts made by the CLI.
	DefaultCLIRetries = 0

	// CLIRetryInitialInterval is the first backoff interval.
	CLIRetryInitialInterval = 500 * time.Millisecond

	// CLIRetryMaxElapsed bounds the total time spent retrying.
	CLIRetryMaxElapsed = 30 * time.Second
)

// Output formats.
const (
	// FormatJSON renders JSON.
	FormatJSON = "json"

	// FormatYAML renders YAML.
	FormatYAML = "yaml"

	// FormatTable renders a table.
	FormatTable = "table"
)

// Display limits.
const (
	// MaxTableCellWidth truncates long cells in table output.
	MaxTableCellWidth = 48
)
