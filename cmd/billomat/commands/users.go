package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Browse users",
		Long:    "List the users of the account and show the user of the API key",
	}

	cmd.AddCommand(newUsersListCommand(rt))
	cmd.AddCommand(newUsersMyselfCommand(rt))

	return cmd
}

func newUsersListCommand(rt *Runtime) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List every user of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := billomat.NewUserFilter()
			if email != "" {
				filter.ByEmail(email)
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			var users []billomat.User

			err = rt.Retry(cmd.Context(), func() error {
				users, err = api.Users().All(cmd.Context(), filter)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if users == nil {
				users = []billomat.User{}
			}

			return rt.Render(users, func(table *tablewriter.Table) {
				table.Header("ID", "Email", "First Name", "Last Name", "Created")

				for _, user := range users {
					_ = table.Append(
						formatInt(user.ID),
						cell(user.Email),
						cell(user.FirstName),
						cell(user.LastName),
						cell(formatTime(user.Created)),
					)
				}
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "filter by email address")

	return cmd
}

func newUsersMyselfCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "myself",
		Short: "Show the current user",
		Long:  "Display the user the API key belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rt.API()
			if err != nil {
				return err
			}

			var user *billomat.User

			err = rt.Retry(cmd.Context(), func() error {
				user, err = api.Users().Myself(cmd.Context())

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}

			return rt.RenderProperties(user, [][2]string{
				{"ID", formatInt(user.ID)},
				{"Email", user.Email},
				{"First Name", user.FirstName},
				{"Last Name", user.LastName},
				{"Role", formatInt(user.RoleID)},
				{"Created", formatTime(user.Created)},
			})
		},
	}
}
