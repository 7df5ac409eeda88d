package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// NewClientsCommand creates the clients command group.
func NewClientsCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client", "customers"},
		Short:   "Manage clients",
		Long:    "List, show, create and delete the clients of the account",
	}

	cmd.AddCommand(newClientsListCommand(rt))
	cmd.AddCommand(newClientsGetCommand(rt))
	cmd.AddCommand(newClientsCreateCommand(rt))
	cmd.AddCommand(newClientsDeleteCommand(rt))
	cmd.AddCommand(newClientsMyselfCommand(rt))

	return cmd
}

func newClientsListCommand(rt *Runtime) *cobra.Command {
	var (
		name        string
		email       string
		countryCode string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Long:  "List every client matching the filters, fetching all pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := billomat.NewClientFilter()
			if name != "" {
				filter.ByName(name)
			}

			if email != "" {
				filter.ByEmail(email)
			}

			if countryCode != "" {
				filter.ByCountryCode(countryCode)
			}

			if len(tags) > 0 {
				filter.ByTags(tags...)
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			var clients []billomat.Client

			err = rt.Retry(cmd.Context(), func() error {
				clients, err = api.Clients().All(cmd.Context(), filter)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			return renderClients(rt, clients)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by company name")
	cmd.Flags().StringVar(&email, "email", "", "filter by email address")
	cmd.Flags().StringVar(&countryCode, "country-code", "", "filter by ISO country code")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "filter by tag (repeatable)")

	return cmd
}

func renderClients(rt *Runtime, clients []billomat.Client) error {
	if len(clients) == 0 && rt.Output() == constants.FormatTable {
		rt.Printf("No clients found\n")

		return nil
	}

	if clients == nil {
		clients = []billomat.Client{}
	}

	return rt.Render(clients, func(table *tablewriter.Table) {
		table.Header("ID", "Number", "Name", "Contact", "Email", "Country", "Created")

		for _, client := range clients {
			contact := client.FirstName
			if client.LastName != "" {
				contact += " " + client.LastName
			}

			_ = table.Append(
				formatInt(client.ID),
				cell(client.ClientNumber),
				cell(client.Name),
				cell(contact),
				cell(client.Email),
				cell(client.CountryCode),
				cell(formatTime(client.Created)),
			)
		}
	})
}

func renderClient(rt *Runtime, client *billomat.Client) error {
	return rt.RenderProperties(client, [][2]string{
		{"ID", formatInt(client.ID)},
		{"Number", client.ClientNumber},
		{"Name", client.Name},
		{"First Name", client.FirstName},
		{"Last Name", client.LastName},
		{"Email", client.Email},
		{"Phone", client.Phone},
		{"Street", client.Street},
		{"Zip", client.Zip},
		{"City", client.City},
		{"Country", client.CountryCode},
		{"Archived", yesNo(client.Archived)},
		{"Payment Types", client.DefaultPaymentTypes.String()},
		{"Created", formatTime(client.Created)},
	})
}

func newClientsGetCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get CLIENT_ID",
		Short: "Get client details",
		Long:  "Display detailed information about a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			var (
				client *billomat.Client
				found  bool
			)

			err = rt.Retry(cmd.Context(), func() error {
				client, found, err = api.Clients().Get(cmd.Context(), id)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to get client: %w", err)
			}

			if !found {
				return fmt.Errorf("client %d: %w", id, constants.ErrNotFound)
			}

			return renderClient(rt, client)
		},
	}
}

func newClientsCreateCommand(rt *Runtime) *cobra.Command {
	client := &billomat.Client{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		Long:  "Create a client from the given fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if client.Name == "" && client.LastName == "" {
				return constants.ErrNameRequired
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			err = api.Clients().Create(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			return renderClient(rt, client)
		},
	}

	cmd.Flags().StringVar(&client.Name, "name", "", "company name")
	cmd.Flags().StringVar(&client.FirstName, "first-name", "", "contact first name")
	cmd.Flags().StringVar(&client.LastName, "last-name", "", "contact last name")
	cmd.Flags().StringVar(&client.Email, "email", "", "email address")
	cmd.Flags().StringVar(&client.CountryCode, "country-code", "", "ISO country code")
	cmd.Flags().StringVar(&client.Note, "note", "", "internal note")

	return cmd
}

func newClientsDeleteCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CLIENT_ID",
		Short: "Delete a client",
		Long:  "Delete a client and everything the service deletes with it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			err = api.Clients().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete client: %w", err)
			}

			rt.Printf("Deleted client %d\n", id)

			return nil
		},
	}
}

func newClientsMyselfCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "myself",
		Short: "Show the account owner",
		Long:  "Display the client record of the account owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rt.API()
			if err != nil {
				return err
			}

			var client *billomat.Client

			err = rt.Retry(cmd.Context(), func() error {
				client, err = api.Clients().Myself(cmd.Context())

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to get account owner: %w", err)
			}

			return renderClient(rt, client)
		},
	}
}
