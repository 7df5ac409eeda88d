package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

const (
	lockTimeout       = 5 * time.Second
	lockRetryInterval = 50 * time.Millisecond
)

// configKeys lists the keys config set accepts.
var configKeys = map[string]bool{
	keyBillomatID:        true,
	keyAPIKey:            true,
	keyAppID:             true,
	keyAppSecret:         true,
	keyBaseURL:           true,
	keyOutput:            true,
	keyInsecure:          true,
	keyRetries:           true,
	keyHTTPTimeout:       true,
	keyRequestsPerSecond: true,
	keyNATSURL:           true,
}

var secretKeys = map[string]bool{
	keyAPIKey:    true,
	keyAppSecret: true,
}

// ConfigFile is the YAML settings file of the CLI. Writers hold an exclusive
// lock on a sibling .lock file.
type ConfigFile struct {
	Path string
}

// Load returns the stored settings. A missing file is empty.
func (f ConfigFile) Load() (map[string]interface{}, error) {
	values := make(map[string]interface{})

	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}

	err = yaml.Unmarshal(data, &values)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.Path, err)
	}

	if values == nil {
		values = make(map[string]interface{})
	}

	return values, nil
}

// Update applies mutate to the stored settings and writes them back.
func (f ConfigFile) Update(ctx context.Context, mutate func(values map[string]interface{}) error) error {
	err := os.MkdirAll(filepath.Dir(f.Path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := flock.New(f.Path + ".lock")

	locked, err := lock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil || !locked {
		return fmt.Errorf("%w: %s", constants.ErrConfigFileLocked, f.Path)
	}

	defer func() { _ = lock.Unlock() }()

	values, err := f.Load()
	if err != nil {
		return err
	}

	err = mutate(values)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(f.Path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the stored account credentials and settings",
	}

	cmd.AddCommand(newConfigShowCommand(rt))
	cmd.AddCommand(newConfigSetCommand(rt))
	cmd.AddCommand(newConfigUnsetCommand(rt))
	cmd.AddCommand(newConfigLoginCommand(rt))

	return cmd
}

func newConfigShowCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration merged from flags, environment and config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]string, 0, len(configKeys))
			for key := range configKeys {
				keys = append(keys, key)
			}

			sort.Strings(keys)

			settings := make(map[string]string, len(keys))

			for _, key := range keys {
				value := rt.viper.GetString(key)
				if value != "" && secretKeys[key] {
					value = Masked
				}

				settings[key] = value
			}

			return rt.Render(settings, func(table *tablewriter.Table) {
				table.Header("Key", "Value")

				for _, key := range keys {
					_ = table.Append(key, cell(settings[key]))
				}
			})
		},
	}
}

func newConfigSetCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Store a configuration value in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if !configKeys[key] {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			if key == keyOutput {
				switch value {
				case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
				default:
					return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, value)
				}
			}

			err := rt.configFile().Update(cmd.Context(), func(values map[string]interface{}) error {
				values[key] = value

				return nil
			})
			if err != nil {
				return err
			}

			shown := value
			if secretKeys[key] {
				shown = Masked
			}

			rt.Printf("Set %s to %s\n", key, shown)

			return nil
		},
	}
}

func newConfigUnsetCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if !configKeys[key] {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err := rt.configFile().Update(cmd.Context(), func(values map[string]interface{}) error {
				delete(values, key)

				return nil
			})
			if err != nil {
				return err
			}

			rt.Printf("Unset %s\n", key)

			return nil
		},
	}
}

func newConfigLoginCommand(rt *Runtime) *cobra.Command {
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store account credentials",
		Long: `Prompt for the account id and API key, check them against the API and
store them in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigLogin(cmd, rt, noVerify)
		},
	}

	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "store the credentials without checking them")

	return cmd
}

func runConfigLogin(cmd *cobra.Command, rt *Runtime, noVerify bool) error {
	reader := bufio.NewReader(rt.in)

	billomatID := rt.viper.GetString(keyBillomatID)
	if billomatID == "" {
		_, _ = fmt.Fprint(rt.errOut, "Billomat ID: ")

		line, err := readLine(reader)
		if err != nil {
			return err
		}

		billomatID = line
	}

	if billomatID == "" {
		return constants.ErrNoBillomatID
	}

	apiKey := rt.viper.GetString(keyAPIKey)
	if !cmd.Flags().Changed("api-key") {
		_, _ = fmt.Fprint(rt.errOut, "API key: ")

		secret, err := readSecret(rt.in, reader)
		if err != nil {
			return err
		}

		apiKey = secret
	}

	if apiKey == "" {
		return constants.ErrEmptyAPIKey
	}

	rt.viper.Set(keyBillomatID, billomatID)
	rt.viper.Set(keyAPIKey, apiKey)

	if !noVerify {
		api, err := rt.API()
		if err != nil {
			return err
		}

		var user *billomat.User

		err = rt.Retry(cmd.Context(), func() error {
			var err error

			user, err = api.Users().Myself(cmd.Context())

			return err
		})
		if err != nil {
			return fmt.Errorf("failed to verify credentials: %w", err)
		}

		rt.Printf("Authenticated as %s\n", user.Email)
	}

	err := rt.configFile().Update(cmd.Context(), func(values map[string]interface{}) error {
		values[keyBillomatID] = billomatID
		values[keyAPIKey] = apiKey

		return nil
	})
	if err != nil {
		return err
	}

	rt.Printf("Credentials for %s saved\n", billomatID)

	return nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// readSecret reads without echo from a terminal and falls back to a plain
// line otherwise.
func readSecret(in io.Reader, reader *bufio.Reader) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		if err != nil {
			return "", fmt.Errorf("reading API key: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	return readLine(reader)
}

func (r *Runtime) configFile() ConfigFile {
	path, err := r.ConfigPath()
	if err != nil {
		path = filepath.Join(".billomat", "config.yml")
	}

	return ConfigFile{Path: path}
}
