package pyruntime

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "python3")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProbeReportsVersion(t *testing.T) {
	stub := writeStub(t, `echo "Python 3.12.1"`)
	rt, err := Probe(context.Background(), stub)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if rt.Command != stub {
		t.Fatalf("Command = %q", rt.Command)
	}
	if rt.Version != "Python 3.12.1" {
		t.Fatalf("Version = %q", rt.Version)
	}
}

func TestProbeNonZeroExit(t *testing.T) {
	stub := writeStub(t, "exit 1")
	_, err := Probe(context.Background(), stub)
	if !errors.Is(err, ErrRuntimeMissing) {
		t.Fatalf("err = %v, want ErrRuntimeMissing", err)
	}
}

func TestProbeMissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-python")
	_, err := Probe(context.Background(), missing)
	if !errors.Is(err, ErrRuntimeMissing) {
		t.Fatalf("err = %v, want ErrRuntimeMissing", err)
	}
}

func TestInstallRequirementsStreamsOutput(t *testing.T) {
	stub := writeStub(t, `echo "args: $*"`)
	rt := &Runtime{Command: stub}
	var out bytes.Buffer
	err := rt.InstallRequirements(context.Background(), "/srv/requirements.txt", Streams{Out: &out, Err: &out})
	if err != nil {
		t.Fatalf("InstallRequirements: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "args: -m pip install -r /srv/requirements.txt" {
		t.Fatalf("output = %q", got)
	}
}

func TestInstallRequirementsFailure(t *testing.T) {
	stub := writeStub(t, `echo "ERROR: no matching distribution" >&2; exit 2`)
	rt := &Runtime{Command: stub}
	var stderr bytes.Buffer
	err := rt.InstallRequirements(context.Background(), "requirements.txt", Streams{Out: &stderr, Err: &stderr})
	if !errors.Is(err, ErrInstallFailed) {
		t.Fatalf("err = %v, want ErrInstallFailed", err)
	}
	if !strings.Contains(stderr.String(), "no matching distribution") {
		t.Fatalf("installer stderr not streamed: %q", stderr.String())
	}
}
