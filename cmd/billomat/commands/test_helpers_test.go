package commands_test

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/cmd/billomat/commands"
	"github.com/fivetwenty-io/billomat/internal/client"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

var (
	clientDescriptor  = billomat.NewDescriptor("Client")
	invoiceDescriptor = billomat.NewDescriptor("Invoice")
	tagDescriptor     = billomat.NewSubDescriptor(clientDescriptor, "ClientTag")
	itemDescriptor    = billomat.NewSubDescriptor(invoiceDescriptor, "InvoiceItem")
	articleDescriptor = billomat.NewDescriptor("Article")
	userDescriptor    = billomat.NewDescriptor("User")
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// testCLI runs command trees against a fake account with a private config
// file.
type testCLI struct {
	fake   *client.FakeBillomat
	config string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()

	fake := client.NewFakeBillomat(t).Register(
		clientDescriptor,
		tagDescriptor,
		invoiceDescriptor,
		itemDescriptor,
		articleDescriptor,
		userDescriptor,
	)

	return &testCLI{
		fake:   fake,
		config: filepath.Join(t.TempDir(), "config.yml"),
	}
}

// run executes args with the fake's credentials.
func (c *testCLI) run(args ...string) (string, error) {
	credentials := []string{"--billomat-id", "fake", "--api-key", c.fake.APIKey}

	return c.runRaw("", append(credentials, args...)...)
}

// runRaw executes args with only the config file and endpoint set.
func (c *testCLI) runRaw(input string, args ...string) (string, error) {
	root := commands.NewRootCommand(commands.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-10-01"})

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(append([]string{"--config", c.config, "--base-url", c.fake.URL()}, args...))

	err := root.Execute()

	return out.String(), err
}
