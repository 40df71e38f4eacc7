package cli

import (
	"errors"
	"io"

	"github.com/uniQuk/mcpEntra/internal/launcher"
	"github.com/uniQuk/mcpEntra/internal/ui"
)

// Report prints err for the operator and returns the process exit code. The
// server's own exit status passes through unchanged; its diagnostic was
// already printed by the launcher.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *launcher.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	out := ui.New(w)
	out.Error("Error: %v", err)
	var hinted *hintedError
	if errors.As(err, &hinted) && hinted.hint != "" {
		out.Println(hinted.hint)
	}
	return 1
}
