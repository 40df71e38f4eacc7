package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uniQuk/mcpEntra/internal/clientconfig"
	"github.com/uniQuk/mcpEntra/internal/envfile"
	"github.com/uniQuk/mcpEntra/internal/setup"
	"github.com/uniQuk/mcpEntra/internal/ui"
)

func newClientsCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Print VS Code, Claude Desktop and Cursor configuration for this install",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClients(cmd, a, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(clientconfig.FormatJSON), "output format (json or yaml)")
	return cmd
}

func runClients(cmd *cobra.Command, a *app, formatFlag string) error {
	format, err := clientconfig.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	if err := a.prepare(); err != nil {
		return err
	}
	contents, err := envfile.Read(a.layout.EnvPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no configuration at %s; run `mcp-entra setup` first", a.layout.EnvPath)
		}
		return err
	}
	docs := clientconfig.Build(contents.Credentials, firstKey(contents.APIKey), a.clientOptions())
	return setup.PrintDocuments(ui.New(cmd.OutOrStdout()), docs, format)
}

// firstKey picks the key clients should send; the server accepts a
// comma-separated list.
func firstKey(keys string) string {
	for _, k := range strings.Split(keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}
