package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/uniQuk/mcpEntra/internal/launcher"
	"github.com/uniQuk/mcpEntra/internal/pyruntime"
)

func runLaunch(cmd *cobra.Command, a *app) error {
	if err := a.prepare(); err != nil {
		return err
	}

	rt, err := probeRuntime(cmd, a)
	if err != nil {
		return err
	}
	if a.skipInstall || a.layout.Settings.Install.Skip {
		fmt.Fprintln(cmd.OutOrStdout(), "Skipping Python dependency install.")
	} else if err := installDependencies(cmd, a, rt); err != nil {
		return err
	}

	if _, err := a.wizard(cmd).RunIfNeeded(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nStarting Microsoft Graph MCP Server...")
	return launcher.Run(launcher.Options{
		Command: rt.Command,
		Args:    []string{a.layout.ScriptPath},
		Env:     a.env.ChildEnv(),
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
}

func probeRuntime(cmd *cobra.Command, a *app) (*pyruntime.Runtime, error) {
	command := a.layout.Settings.Runtime.Command
	rt, err := pyruntime.Probe(cmd.Context(), command)
	if err != nil {
		return nil, withHint(err, renderGuidance("runtime-missing", runtimeMissingData{
			Command:  command,
			URL:      pyruntime.DownloadURL,
			Settings: a.layout.SettingsPath,
		}))
	}
	return rt, nil
}

func installDependencies(cmd *cobra.Command, a *app, rt *pyruntime.Runtime) error {
	fmt.Fprintln(cmd.OutOrStdout(), "Installing Python dependencies...")
	err := rt.InstallRequirements(cmd.Context(), a.layout.RequirementsPath, pyruntime.Streams{
		In:  inheritableStdin(cmd.InOrStdin()),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return withHint(err, renderGuidance("install-failed", installFailedData{
			Command: rt.Command,
			Args:    pyruntime.InstallArgs(a.layout.RequirementsPath),
		}))
	}
	return nil
}

// inheritableStdin passes a terminal or pipe through to the installer. Any
// other reader would be drained by exec's copy goroutine, taking the setup
// answers with it.
func inheritableStdin(r io.Reader) io.Reader {
	if f, ok := r.(*os.File); ok {
		return f
	}
	return nil
}
