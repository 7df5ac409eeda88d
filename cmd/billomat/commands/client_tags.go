package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// NewClientTagsCommand creates the client tags command group.
func NewClientTagsCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client-tags",
		Aliases: []string{"tags"},
		Short:   "Manage client tags",
		Long:    "List, add and remove the tags of a client",
	}

	cmd.AddCommand(newClientTagsListCommand(rt))
	cmd.AddCommand(newClientTagsAddCommand(rt))
	cmd.AddCommand(newClientTagsDeleteCommand(rt))

	return cmd
}

func newClientTagsListCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list CLIENT_ID",
		Short: "List the tags of a client",
		Long:  "List every tag attached to a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseID(args[0])
			if err != nil {
				return err
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			var tags []billomat.Tag

			err = rt.Retry(cmd.Context(), func() error {
				tags, err = api.Clients().Tags().All(cmd.Context(), clientID, nil)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to list tags of client %d: %w", clientID, err)
			}

			return renderTags(rt, tags)
		},
	}
}

func renderTags(rt *Runtime, tags []billomat.Tag) error {
	if len(tags) == 0 && rt.Output() == constants.FormatTable {
		rt.Printf("No tags found\n")

		return nil
	}

	if tags == nil {
		tags = []billomat.Tag{}
	}

	return rt.Render(tags, func(table *tablewriter.Table) {
		table.Header("ID", "Owner", "Name")

		for _, tag := range tags {
			_ = table.Append(formatInt(tag.ID), formatInt(tag.OwnerID), cell(tag.Name))
		}
	})
}

func newClientTagsAddCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "add CLIENT_ID NAME",
		Short: "Tag a client",
		Long:  "Attach a tag to a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseID(args[0])
			if err != nil {
				return err
			}

			if args[1] == "" {
				return constants.ErrNameRequired
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			tag := &billomat.Tag{Name: args[1]}
			tag.OwnerID = clientID

			err = api.Clients().Tags().Create(cmd.Context(), tag)
			if err != nil {
				return fmt.Errorf("failed to tag client %d: %w", clientID, err)
			}

			return renderTags(rt, []billomat.Tag{*tag})
		},
	}
}

func newClientTagsDeleteCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CLIENT_ID TAG_ID",
		Short: "Remove a tag",
		Long:  "Remove a tag from a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseID(args[0])
			if err != nil {
				return err
			}

			tagID, err := parseID(args[1])
			if err != nil {
				return err
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			err = api.Clients().Tags().Delete(cmd.Context(), clientID, tagID)
			if err != nil {
				return fmt.Errorf("failed to delete tag %d: %w", tagID, err)
			}

			rt.Printf("Deleted tag %d of client %d\n", tagID, clientID)

			return nil
		},
	}
}
