package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// NewInvoiceItemsCommand creates the invoice items command group.
func NewInvoiceItemsCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoice-items",
		Aliases: []string{"items"},
		Short:   "Manage invoice items",
		Long:    "List, add and remove the lines of a draft invoice",
	}

	cmd.AddCommand(newInvoiceItemsListCommand(rt))
	cmd.AddCommand(newInvoiceItemsAddCommand(rt))
	cmd.AddCommand(newInvoiceItemsDeleteCommand(rt))

	return cmd
}

func newInvoiceItemsListCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list INVOICE_ID",
		Short: "List invoice items",
		Long:  "List the items of an invoice in position order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoiceID, err := parseID(args[0])
			if err != nil {
				return err
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			var items []billomat.Item

			err = rt.Retry(cmd.Context(), func() error {
				items, err = api.Invoices().Items().All(cmd.Context(), invoiceID, nil)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to list items of invoice %d: %w", invoiceID, err)
			}

			return renderItems(rt, items)
		},
	}
}

func renderItems(rt *Runtime, items []billomat.Item) error {
	if len(items) == 0 && rt.Output() == constants.FormatTable {
		rt.Printf("No items found\n")

		return nil
	}

	if items == nil {
		items = []billomat.Item{}
	}

	return rt.Render(items, func(table *tablewriter.Table) {
		table.Header("ID", "Position", "Title", "Quantity", "Unit", "Unit Price", "Total Gross")

		for _, item := range items {
			_ = table.Append(
				formatInt(item.ID),
				cell(formatInt(item.Position)),
				cell(item.Title),
				strconv.FormatFloat(item.Quantity, 'f', -1, 64),
				cell(item.Unit),
				formatAmount(item.UnitPrice, ""),
				formatAmount(item.TotalGross, ""),
			)
		}
	})
}

func newInvoiceItemsAddCommand(rt *Runtime) *cobra.Command {
	var (
		taxRate float64
		item    = &billomat.Item{}
	)

	cmd := &cobra.Command{
		Use:   "add INVOICE_ID",
		Short: "Add an invoice item",
		Long:  "Append an item to a draft invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoiceID, err := parseID(args[0])
			if err != nil {
				return err
			}

			if item.Title == "" && item.ArticleID == 0 {
				return constants.ErrTitleRequired
			}

			if cmd.Flags().Changed("tax-rate") {
				item.TaxRate = &taxRate
			}

			item.OwnerID = invoiceID

			api, err := rt.API()
			if err != nil {
				return err
			}

			err = api.Invoices().Items().Create(cmd.Context(), item)
			if err != nil {
				return fmt.Errorf("failed to add item to invoice %d: %w", invoiceID, err)
			}

			return renderItems(rt, []billomat.Item{*item})
		},
	}

	cmd.Flags().StringVar(&item.Title, "title", "", "item title")
	cmd.Flags().StringVar(&item.Description, "description", "", "item description")
	cmd.Flags().IntVar(&item.ArticleID, "article-id", 0, "article to copy title and price from")
	cmd.Flags().Float64Var(&item.Quantity, "quantity", 1, "quantity")
	cmd.Flags().StringVar(&item.Unit, "unit", "", "unit of the quantity")
	cmd.Flags().Float64Var(&item.UnitPrice, "unit-price", 0, "price per unit")
	cmd.Flags().Float64Var(&taxRate, "tax-rate", 0, "tax rate in percent")

	return cmd
}

func newInvoiceItemsDeleteCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete INVOICE_ID ITEM_ID",
		Short: "Remove an invoice item",
		Long:  "Remove an item from a draft invoice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoiceID, err := parseID(args[0])
			if err != nil {
				return err
			}

			itemID, err := parseID(args[1])
			if err != nil {
				return err
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			err = api.Invoices().Items().Delete(cmd.Context(), invoiceID, itemID)
			if err != nil {
				return fmt.Errorf("failed to delete item %d: %w", itemID, err)
			}

			rt.Printf("Deleted item %d of invoice %d\n", itemID, invoiceID)

			return nil
		},
	}
}
