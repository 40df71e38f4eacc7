package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInstallCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the server's Python dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(); err != nil {
				return err
			}
			rt, err := probeRuntime(cmd, a)
			if err != nil {
				return err
			}
			if err := installDependencies(cmd, a, rt); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Python dependencies installed successfully.")
			return nil
		},
	}
}
