package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show account settings",
		Long:  "Display the account wide settings",
	}

	cmd.AddCommand(newSettingsShowCommand(rt))

	return cmd
}

func newSettingsShowCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show account settings",
		Long:  "Display currency, locale, number ranges and document defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rt.API()
			if err != nil {
				return err
			}

			var settings *billomat.Settings

			err = rt.Retry(cmd.Context(), func() error {
				settings, err = api.Settings().Get(cmd.Context())

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}

			return rt.RenderProperties(settings, [][2]string{
				{"Currency", settings.CurrencyCode},
				{"Locale", settings.Locale},
				{"Prices", string(settings.NetGross)},
				{"Number Range Mode", settings.NumberRangeMode},
				{"Client Number Prefix", settings.ClientNumberPre},
				{"Next Client Number", formatIntPtr(settings.ClientNumberNext)},
				{"Invoice Number Prefix", settings.InvoiceNumberPre},
				{"Next Invoice Number", formatIntPtr(settings.InvoiceNumberNext)},
				{"Due Days", formatIntPtr(settings.DueDays)},
				{"Email Sender", settings.DefaultEmailSender},
				{"Updated", formatTime(settings.Updated)},
			})
		},
	}
}
