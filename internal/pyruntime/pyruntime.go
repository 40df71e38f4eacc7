package pyruntime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DownloadURL is where operators are sent when no interpreter is found.
const DownloadURL = "https://www.python.org/downloads/"

var (
	// ErrRuntimeMissing indicates the interpreter could not be launched or
	// failed its version query.
	ErrRuntimeMissing = errors.New("python interpreter not found")
	// ErrInstallFailed indicates the package manager exited unsuccessfully.
	ErrInstallFailed = errors.New("failed to install python dependencies")
)

// Streams are the standard streams handed to child processes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Runtime is a probed interpreter.
type Runtime struct {
	Command string
	Version string
}

// Probe runs `<command> --version` and succeeds only on a zero exit status.
func Probe(ctx context.Context, command string) (*Runtime, error) {
	cmd := exec.CommandContext(ctx, command, "--version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s --version: %v", ErrRuntimeMissing, command, err)
	}
	return &Runtime{
		Command: command,
		Version: strings.TrimSpace(string(out)),
	}, nil
}

// InstallArgs is the package manager invocation for a requirements manifest.
func InstallArgs(requirements string) []string {
	return []string{"-m", "pip", "install", "-r", requirements}
}

// InstallRequirements installs the manifest with the interpreter's package
// manager, streaming its output.
func (r *Runtime) InstallRequirements(ctx context.Context, requirements string, streams Streams) error {
	cmd := exec.CommandContext(ctx, r.Command, InstallArgs(requirements)...)
	cmd.Stdin = streams.In
	cmd.Stdout = streams.Out
	cmd.Stderr = streams.Err
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}
	return nil
}
