package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

const pdfFilePerm = 0o644

// NewInvoicesCommand creates the invoices command group.
func NewInvoicesCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice", "inv"},
		Short:   "Manage invoices",
		Long:    "List, show, complete, download and delete invoices",
	}

	cmd.AddCommand(newInvoicesListCommand(rt))
	cmd.AddCommand(newInvoicesGetCommand(rt))
	cmd.AddCommand(newInvoicesCompleteCommand(rt))
	cmd.AddCommand(newInvoicesPDFCommand(rt))
	cmd.AddCommand(newInvoicesDeleteCommand(rt))

	return cmd
}

func newInvoicesListCommand(rt *Runtime) *cobra.Command {
	var (
		clientID int
		number   string
		statuses []string
		from     string
		to       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Long: `List every invoice matching the filters, fetching all pages.

--from and --to accept most date notations, e.g. 2026-03-01, 03/01/2026 or
"March 1, 2026".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := billomat.NewInvoiceFilter()

			if clientID != 0 {
				filter.ByClientID(clientID)
			}

			if number != "" {
				filter.ByInvoiceNumber(number)
			}

			if len(statuses) > 0 {
				states := make([]billomat.InvoiceStatus, 0, len(statuses))
				for _, status := range statuses {
					states = append(states, billomat.InvoiceStatus(status))
				}

				filter.ByStatus(states...)
			}

			fromDate, err := parseDate(from)
			if err != nil {
				return err
			}

			toDate, err := parseDate(to)
			if err != nil {
				return err
			}

			filter.ByDateRange(fromDate, toDate)

			api, err := rt.API()
			if err != nil {
				return err
			}

			var invoices []billomat.Invoice

			err = rt.Retry(cmd.Context(), func() error {
				invoices, err = api.Invoices().All(cmd.Context(), filter)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to list invoices: %w", err)
			}

			return renderInvoices(rt, invoices)
		},
	}

	cmd.Flags().IntVar(&clientID, "client-id", 0, "filter by client")
	cmd.Flags().StringVar(&number, "number", "", "filter by invoice number")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "filter by status (DRAFT, OPEN, OVERDUE, PAID, CANCELED)")
	cmd.Flags().StringVar(&from, "from", "", "only invoices dated on or after this date")
	cmd.Flags().StringVar(&to, "to", "", "only invoices dated on or before this date")

	return cmd
}

func renderInvoices(rt *Runtime, invoices []billomat.Invoice) error {
	if len(invoices) == 0 && rt.Output() == constants.FormatTable {
		rt.Printf("No invoices found\n")

		return nil
	}

	if invoices == nil {
		invoices = []billomat.Invoice{}
	}

	return rt.Render(invoices, func(table *tablewriter.Table) {
		table.Header("ID", "Number", "Client", "Date", "Status", "Total Gross", "Open")

		for _, invoice := range invoices {
			_ = table.Append(
				formatInt(invoice.ID),
				cell(invoice.InvoiceNumber),
				cell(formatInt(invoice.ClientID)),
				cell(formatDate(invoice.Date)),
				cell(string(invoice.Status)),
				formatAmount(invoice.TotalGross, invoice.CurrencyCode),
				formatAmount(invoice.OpenAmount, invoice.CurrencyCode),
			)
		}
	})
}

func newInvoicesGetCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get INVOICE_ID",
		Short: "Get invoice details",
		Long:  "Display detailed information about an invoice",
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
				invoice *billomat.Invoice
				found   bool
			)

			err = rt.Retry(cmd.Context(), func() error {
				invoice, found, err = api.Invoices().Get(cmd.Context(), id)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to get invoice: %w", err)
			}

			if !found {
				return fmt.Errorf("invoice %d: %w", id, constants.ErrNotFound)
			}

			return rt.RenderProperties(invoice, [][2]string{
				{"ID", formatInt(invoice.ID)},
				{"Number", invoice.InvoiceNumber},
				{"Client", formatInt(invoice.ClientID)},
				{"Status", string(invoice.Status)},
				{"Date", formatDate(invoice.Date)},
				{"Due Date", formatDate(invoice.DueDate)},
				{"Title", invoice.Title},
				{"Total Net", formatAmount(invoice.TotalNet, invoice.CurrencyCode)},
				{"Total Gross", formatAmount(invoice.TotalGross, invoice.CurrencyCode)},
				{"Paid", formatAmount(invoice.PaidAmount, invoice.CurrencyCode)},
				{"Open", formatAmount(invoice.OpenAmount, invoice.CurrencyCode)},
				{"Payment Types", invoice.PaymentTypes.String()},
				{"Created", formatTime(invoice.Created)},
			})
		},
	}
}

func newInvoicesCompleteCommand(rt *Runtime) *cobra.Command {
	var templateID int

	cmd := &cobra.Command{
		Use:   "complete INVOICE_ID",
		Short: "Complete a draft invoice",
		Long:  "Turn a draft invoice into an open invoice, assigning its number and rendering its PDF",
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

			err = api.Invoices().Complete(cmd.Context(), id, templateID)
			if err != nil {
				return fmt.Errorf("failed to complete invoice: %w", err)
			}

			rt.Printf("Completed invoice %d\n", id)

			return nil
		},
	}

	cmd.Flags().IntVar(&templateID, "template-id", 0, "template to render with (default template if unset)")

	return cmd
}

func newInvoicesPDFCommand(rt *Runtime) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "pdf INVOICE_ID",
		Short: "Download the invoice PDF",
		Long:  "Download the rendered PDF of a completed invoice. Use --file - to write to standard output.",
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

			var pdf *billomat.PDF

			err = rt.Retry(cmd.Context(), func() error {
				pdf, err = api.Invoices().PDF(cmd.Context(), id)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to download invoice PDF: %w", err)
			}

			if file == "-" {
				_, err = rt.out.Write(pdf.Content)

				return err
			}

			target := file
			if target == "" {
				target = filepath.Base(pdf.Filename)
				if pdf.Filename == "" {
					target = fmt.Sprintf("invoice-%d.pdf", id)
				}
			}

			err = os.WriteFile(target, pdf.Content, pdfFilePerm)
			if err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}

			rt.Printf("Saved %s (%d bytes)\n", target, len(pdf.Content))

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "output file (default is the server's file name)")

	return cmd
}

func newInvoicesDeleteCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete INVOICE_ID",
		Short: "Delete an invoice",
		Long:  "Delete a draft invoice",
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

			err = api.Invoices().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete invoice: %w", err)
			}

			rt.Printf("Deleted invoice %d\n", id)

			return nil
		},
	}
}
