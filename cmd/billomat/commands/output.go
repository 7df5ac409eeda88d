package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

const (
	// NotAvailable fills empty table cells.
	NotAvailable = "N/A"

	// Masked replaces secrets in output.
	Masked = "********"

	defaultJSONIndent = 2
)

// Render writes value in the selected output format. JSON and YAML use the
// wire names of the API; table output is produced by table.
func (r *Runtime) Render(value interface{}, table func(table *tablewriter.Table)) error {
	switch r.Output() {
	case constants.FormatJSON:
		return r.renderJSON(value)
	case constants.FormatYAML:
		return r.renderYAML(value)
	default:
		writer := tablewriter.NewWriter(r.out)
		table(writer)

		err := writer.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// RenderProperties renders value as JSON or YAML, or as a two column table of
// rows.
func (r *Runtime) RenderProperties(value interface{}, rows [][2]string) error {
	return r.Render(value, func(table *tablewriter.Table) {
		table.Header("Property", "Value")

		for _, row := range rows {
			_ = table.Append(row[0], cell(row[1]))
		}
	})
}

// Printf writes a status line to the command output. Structured output
// formats stay parseable, so the line is only written for tables.
func (r *Runtime) Printf(format string, args ...interface{}) {
	if r.Output() != constants.FormatTable {
		return
	}

	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *Runtime) renderJSON(value interface{}) error {
	data, err := r.codec.Render(value)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	var indented bytes.Buffer

	err = json.Indent(&indented, data, "", strings.Repeat(" ", defaultJSONIndent))
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	indented.WriteByte('\n')

	_, err = r.out.Write(indented.Bytes())

	return err
}

func (r *Runtime) renderYAML(value interface{}) error {
	data, err := r.codec.Render(value)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	// JSON is YAML; decoding into a node keeps the field order.
	var node yaml.Node

	err = yaml.Unmarshal(data, &node)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	blockStyle(&node)

	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(defaultJSONIndent)

	err = encoder.Encode(&node)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

func blockStyle(node *yaml.Node) {
	node.Style = 0

	for _, child := range node.Content {
		blockStyle(child)
	}
}

func cell(value string) string {
	if value == "" {
		return NotAvailable
	}

	value = strings.ReplaceAll(value, "\n", " ")

	if len(value) > constants.MaxTableCellWidth {
		return value[:constants.MaxTableCellWidth-3] + "..."
	}

	return value
}

func formatInt(value int) string {
	if value == 0 {
		return ""
	}

	return strconv.Itoa(value)
}

func formatIntPtr(value *int) string {
	if value == nil {
		return ""
	}

	return strconv.Itoa(*value)
}

func formatAmount(value float64, currency string) string {
	amount := strconv.FormatFloat(value, 'f', 2, 64)
	if currency == "" {
		return amount
	}

	return amount + " " + currency
}

func formatTime(value *time.Time) string {
	if value == nil {
		return ""
	}

	return value.Format(time.DateOnly)
}

func formatDate(value *billomat.Date) string {
	if value == nil || value.IsZero() {
		return ""
	}

	return value.String()
}
