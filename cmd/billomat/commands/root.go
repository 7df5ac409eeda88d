package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/internal/constants"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Date    string `json:"built"   yaml:"built"`
}

// flagKeys maps global flags to their configuration keys.
var flagKeys = map[string]string{
	"config":      keyConfig,
	"billomat-id": keyBillomatID,
	"api-key":     keyAPIKey,
	"base-url":    keyBaseURL,
	"output":      keyOutput,
	"verbose":     keyVerbose,
	"insecure":    keyInsecure,
	"retries":     keyRetries,
	"nats-url":    keyNATSURL,
}

// NewRootCommand creates the billomat command tree. Every tree has its own
// configuration state.
func NewRootCommand(info BuildInfo) *cobra.Command {
	rt := NewRuntime()

	cmd := &cobra.Command{
		Use:   "billomat",
		Short: "Billomat API CLI",
		Long: `A command-line interface for the Billomat invoicing API.

Credentials are read from flags, BILLOMAT_* environment variables or
$HOME/.billomat/config.yml, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.Load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.Close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.billomat/config.yml)")
	flags.String("billomat-id", "", "account id, the first label of <id>.billomat.net")
	flags.String("api-key", "", "API key")
	flags.String("base-url", "", "API endpoint (default is https://<billomat-id>.billomat.net)")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log every request and response")
	flags.Bool("insecure", false, "talk plain http")
	flags.Int("retries", constants.DefaultCLIRetries, "retry rate limited, unavailable and network failures")
	flags.String("nats-url", "", "publish mutation events to a NATS server")

	for flag, key := range flagKeys {
		_ = rt.viper.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(NewVersionCommand(rt, info))
	cmd.AddCommand(NewConfigCommand(rt))
	cmd.AddCommand(NewClientsCommand(rt))
	cmd.AddCommand(NewClientTagsCommand(rt))
	cmd.AddCommand(NewInvoicesCommand(rt))
	cmd.AddCommand(NewInvoiceItemsCommand(rt))
	cmd.AddCommand(NewArticlesCommand(rt))
	cmd.AddCommand(NewUsersCommand(rt))
	cmd.AddCommand(NewSettingsCommand(rt))

	return cmd
}
