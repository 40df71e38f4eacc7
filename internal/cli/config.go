package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uniQuk/mcpEntra/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective launcher settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(); err != nil {
				return err
			}
			data, err := config.Encode(a.layout.Settings)
			if err != nil {
				return err
			}
			source := "defaults; file not present"
			if exists(a.layout.SettingsPath) {
				source = "loaded"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s (%s)\n", a.layout.SettingsPath, source)
			_, err = out.Write(data)
			return err
		},
	}
}
