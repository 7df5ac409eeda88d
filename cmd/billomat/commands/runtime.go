package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/billomat/internal/codec"
	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
	"github.com/fivetwenty-io/billomat/pkg/bmclient"
	"github.com/fivetwenty-io/billomat/pkg/events"
)

// Configuration keys.
const (
	keyConfig            = "config"
	keyBillomatID        = "billomat_id"
	keyAPIKey            = "api_key"
	keyAppID             = "app_id"
	keyAppSecret         = "app_secret"
	keyBaseURL           = "base_url"
	keyOutput            = "output"
	keyVerbose           = "verbose"
	keyInsecure          = "insecure"
	keyRetries           = "retries"
	keyHTTPTimeout       = "http_timeout"
	keyRequestsPerSecond = "requests_per_second"
	keyNATSURL           = "nats_url"
)

// Runtime carries the state shared by the commands of one invocation.
type Runtime struct {
	viper *viper.Viper
	codec *codec.Codec

	out    io.Writer
	errOut io.Writer
	in     io.Reader

	logger    billomat.Logger
	api       billomat.API
	publisher *events.NATSPublisher
}

// NewRuntime returns a runtime reading BILLOMAT_* environment variables.
func NewRuntime() *Runtime {
	v := viper.New()
	v.SetEnvPrefix("BILLOMAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keyBillomatID, "BILLOMAT_BILLOMAT_ID", "BILLOMAT_ID")

	return &Runtime{
		viper:  v,
		codec:  codec.New(codec.Options{IgnoreUnknownProperties: true}),
		out:    os.Stdout,
		errOut: os.Stderr,
		in:     os.Stdin,
		logger: billomat.NopLogger{},
	}
}

// Load reads the config file and binds the command's streams.
func (r *Runtime) Load(cmd *cobra.Command) error {
	r.out = cmd.OutOrStdout()
	r.errOut = cmd.ErrOrStderr()
	r.in = cmd.InOrStdin()

	path, err := r.ConfigPath()
	if err != nil {
		return err
	}

	r.viper.SetConfigFile(path)
	r.viper.SetConfigType("yml")

	err = r.viper.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch r.Output() {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, r.Output())
	}

	level := hclog.Warn
	if r.viper.GetBool(keyVerbose) {
		level = hclog.Debug
	}

	r.logger = billomat.NewHCLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "billomat",
		Level:  level,
		Output: r.errOut,
	}))

	if r.viper.GetBool(keyVerbose) && r.viper.ConfigFileUsed() != "" {
		r.logger.Debug("Using config file", map[string]interface{}{"path": r.viper.ConfigFileUsed()})
	}

	return nil
}

// ConfigPath returns the config file in use.
func (r *Runtime) ConfigPath() (string, error) {
	path := r.viper.GetString(keyConfig)
	if path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".billomat", "config.yml"), nil
}

// Output returns the selected output format.
func (r *Runtime) Output() string {
	return strings.ToLower(r.viper.GetString(keyOutput))
}

// API returns the client of the configured account, building it on first
// use.
func (r *Runtime) API() (billomat.API, error) {
	if r.api != nil {
		return r.api, nil
	}

	values, err := r.clientSettings()
	if err != nil {
		return nil, err
	}

	opts := []bmclient.Option{bmclient.WithLogger(r.logger)}

	natsURL := r.viper.GetString(keyNATSURL)
	if natsURL != "" {
		publisher, err := events.NewNATSPublisher(&events.NATSConfig{
			URL:   natsURL,
			Name:  "billomat-cli",
			Flush: true,
		})
		if err != nil {
			return nil, err
		}

		r.publisher = publisher
		opts = append(opts, bmclient.WithEvents(publisher))
	}

	api, err := bmclient.NewFromMap(values, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	err = api.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	r.api = api

	return api, nil
}

func (r *Runtime) clientSettings() (map[string]interface{}, error) {
	billomatID := r.viper.GetString(keyBillomatID)
	if billomatID == "" {
		return nil, constants.ErrNoBillomatID
	}

	apiKey := r.viper.GetString(keyAPIKey)
	if apiKey == "" {
		return nil, constants.ErrNoAPIKey
	}

	values := map[string]interface{}{
		keyBillomatID: billomatID,
		keyAPIKey:     apiKey,
		"secure":      !r.viper.GetBool(keyInsecure),
		"debug":       r.viper.GetBool(keyVerbose),
	}

	for _, key := range []string{keyAppID, keyAppSecret, keyBaseURL, keyHTTPTimeout, keyRequestsPerSecond} {
		if value := r.viper.GetString(key); value != "" {
			values[key] = value
		}
	}

	return values, nil
}

// Retry runs operation, retrying temporary failures with exponential backoff
// as often as --retries allows.
func (r *Runtime) Retry(ctx context.Context, operation func() error) error {
	retries := r.viper.GetInt(keyRetries)
	if retries <= 0 {
		return operation()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = constants.CLIRetryInitialInterval
	policy.MaxElapsedTime = constants.CLIRetryMaxElapsed

	attempt := 0

	return backoff.Retry(func() error {
		attempt++

		err := operation()
		if err == nil {
			return nil
		}

		if !billomat.IsTemporary(err) {
			return backoff.Permanent(err)
		}

		r.logger.Warn("Retrying after temporary failure", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx))
}

// Close releases the client and the event publisher.
func (r *Runtime) Close() error {
	var err error

	if r.api != nil {
		err = r.api.Close()
		r.api = nil
	}

	if r.publisher != nil {
		r.publisher.Close()
		r.publisher = nil
	}

	return err
}
