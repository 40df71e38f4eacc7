package cli

import (
	"github.com/spf13/cobra"

	"github.com/uniQuk/mcpEntra/internal/clientconfig"
	"github.com/uniQuk/mcpEntra/internal/hostenv"
	"github.com/uniQuk/mcpEntra/internal/layout"
	"github.com/uniQuk/mcpEntra/internal/setup"
	"github.com/uniQuk/mcpEntra/internal/version"
)

func Execute() error {
	return newRootCommand().Execute()
}

// app is the state shared by every command. The host environment is read once.
type app struct {
	root        string
	skipInstall bool

	env    hostenv.Environment
	layout *layout.Layout
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "mcp-entra",
		Short:         "Set up and launch the Microsoft Graph MCP server",
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd, a)
		},
	}
	cmd.PersistentFlags().StringVar(&a.root, "root", "", "server install directory (default: discovered from the executable or $MCP_ENTRA_HOME)")
	cmd.Flags().BoolVar(&a.skipInstall, "skip-install", false, "do not install python dependencies before launching")

	cmd.AddCommand(
		newSetupCommand(a),
		newInstallCommand(a),
		newClientsCommand(a),
		newDoctorCommand(a),
		newConfigCommand(a),
		newVersionCommand(),
	)

	return cmd
}

func (a *app) prepare() error {
	if a.layout != nil {
		return nil
	}
	env, err := hostenv.Load()
	if err != nil {
		return err
	}
	l, err := layout.Resolve(a.root, env.Home)
	if err != nil {
		return err
	}
	a.env = env
	a.layout = l
	return nil
}

func (a *app) clientOptions() clientconfig.Options {
	return clientconfig.Options{
		URL:     a.layout.Settings.Server.URL,
		Package: a.layout.Settings.Server.Package,
	}
}

func (a *app) wizard(cmd *cobra.Command) *setup.Wizard {
	return &setup.Wizard{
		Layout:  a.layout,
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Secrets: setup.StrategyFor(a.env.AssistantHost(), nil),
		Clients: a.clientOptions(),
	}
}
