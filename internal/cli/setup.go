package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Collect Entra ID credentials and print client configuration (first run only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(); err != nil {
				return err
			}
			ran, err := a.wizard(cmd).RunIfNeeded()
			if err != nil {
				return err
			}
			if !ran {
				fmt.Fprintf(cmd.OutOrStdout(), "Already configured: %s\n", a.layout.EnvPath)
				fmt.Fprintln(cmd.OutOrStdout(), "Delete it to run setup again, or use `mcp-entra clients` to reprint client configuration.")
			}
			return nil
		},
	}
}
