package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/uniQuk/mcpEntra/internal/envfile"
	"github.com/uniQuk/mcpEntra/internal/pyruntime"
)

func newDoctorCommand(a *app) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose launcher prerequisites and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(); err != nil {
				return err
			}
			return runDoctor(cmd, a, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show passing checks too")
	return cmd
}

type doctorContext struct {
	Runtime  *pyruntime.Runtime
	Contents *envfile.Contents
}

type doctorCheck struct {
	Name string
	Fn   func(*doctorContext) error
}

func runDoctor(cmd *cobra.Command, a *app, verbose bool) error {
	ctx := &doctorContext{}
	l := a.layout
	checks := []doctorCheck{
		{Name: "python available", Fn: func(c *doctorContext) error {
			rt, err := pyruntime.Probe(cmd.Context(), l.Settings.Runtime.Command)
			if err != nil {
				return err
			}
			c.Runtime = rt
			return nil
		}},
		{Name: "requirements file", Fn: requireFile(l.RequirementsPath)},
		{Name: "server script", Fn: requireFile(l.ScriptPath)},
		{Name: "configuration file", Fn: func(c *doctorContext) error {
			contents, err := envfile.Read(l.EnvPath)
			if errors.Is(err, os.ErrNotExist) {
				return errors.New("missing; run `mcp-entra setup`")
			}
			if err != nil {
				return err
			}
			c.Contents = &contents
			return nil
		}},
		{Name: "configuration file owner-only", Fn: func(c *doctorContext) error {
			if c.Contents == nil {
				return errors.New("configuration file missing")
			}
			return checkOwnerOnly(l.EnvPath)
		}},
		{Name: "credentials complete", Fn: func(c *doctorContext) error {
			if c.Contents == nil {
				return errors.New("configuration file missing")
			}
			if missing := missingCredentials(*c.Contents, a.env.AssistantHost()); len(missing) > 0 {
				return fmt.Errorf("missing %v", missing)
			}
			return nil
		}},
	}

	out := cmd.OutOrStdout()
	var failures []string
	for _, check := range checks {
		err := check.Fn(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("✗ %s: %v", check.Name, err))
			continue
		}
		if verbose {
			fmt.Fprintf(out, "✓ %s\n", check.Name)
		}
	}

	if ctx.Runtime != nil && verbose {
		fmt.Fprintf(out, "Interpreter: %s (%s)\n", ctx.Runtime.Command, ctx.Runtime.Version)
	}
	if ctx.Contents != nil {
		printCredentialReport(out, *ctx.Contents, a.env.AssistantHost())
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintln(cmd.ErrOrStderr(), failure)
		}
		return fmt.Errorf("%d doctor checks failed", len(failures))
	}

	fmt.Fprintln(out, "healthy!")
	return nil
}

func requireFile(path string) func(*doctorContext) error {
	return func(*doctorContext) error {
		if !exists(path) {
			return fmt.Errorf("%s not found", path)
		}
		return nil
	}
}

func checkOwnerOnly(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		return fmt.Errorf("mode %o allows access by other users; run `chmod 600 %s`", perm, path)
	}
	return nil
}

func missingCredentials(c envfile.Contents, assistantHost bool) []string {
	var missing []string
	for _, kv := range credentialFields(c) {
		if kv.value == "" {
			missing = append(missing, kv.key)
		}
	}
	if !assistantHost && c.APIKey == "" {
		missing = append(missing, envfile.KeyAPIKeys)
	}
	return missing
}

type credentialField struct {
	key   string
	value string
}

func credentialFields(c envfile.Contents) []credentialField {
	return []credentialField{
		{envfile.KeyTenantID, c.TenantID},
		{envfile.KeyClientID, c.ClientID},
		{envfile.KeyClientSecret, c.ClientSecret},
	}
}

// printCredentialReport shows which variables are set without their values.
func printCredentialReport(w io.Writer, c envfile.Contents, assistantHost bool) {
	fmt.Fprintln(w, "Configured variables:")
	for _, kv := range credentialFields(c) {
		fmt.Fprintf(w, "  %s: %s\n", kv.key, setLabel(kv.value))
	}
	if assistantHost {
		fmt.Fprintf(w, "  %s: [BYPASSED - Running with AI assistant]\n", envfile.KeyAPIKeys)
	} else {
		fmt.Fprintf(w, "  %s: %s\n", envfile.KeyAPIKeys, setLabel(c.APIKey))
	}
}

func setLabel(v string) string {
	if v == "" {
		return "[NOT SET]"
	}
	return "[SET]"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
