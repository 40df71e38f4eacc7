package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/uniQuk/mcpEntra/internal/ui"
)

// ForwardedSignals are relayed to the server instead of stopping the launcher.
var ForwardedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// ExitError carries the server's exit status so it becomes the launcher's own.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("server exited with code %d", e.Code)
}

func (e *ExitError) ExitCode() int {
	return e.Code
}

// Options describe the server process.
type Options struct {
	Command string
	Args    []string
	Env     []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Signals overrides the subscription to ForwardedSignals.
	Signals <-chan os.Signal
}

// Run starts the server, forwards termination signals to it and waits for it
// to exit. A non-zero exit is reported on Stderr and returned as *ExitError.
func Run(opts Options) error {
	sigs := opts.Signals
	if sigs == nil {
		ch := make(chan os.Signal, 2)
		signal.Notify(ch, ForwardedSignals...)
		defer signal.Stop(ch)
		sigs = ch
	}

	cmd := exec.Command(opts.Command, opts.Args...)
	cmd.Env = opts.Env
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout

	// The launcher's notices share the child's stderr. A file is written by
	// both processes directly; any other writer is fed by exec's copy
	// goroutine and must be locked.
	var stderr io.Writer = io.Discard
	switch w := opts.Stderr.(type) {
	case nil:
	case *os.File:
		cmd.Stderr = w
		stderr = w
	default:
		locked := &syncWriter{w: w}
		cmd.Stderr = locked
		stderr = locked
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	done := make(chan struct{})
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for {
			select {
			case sig, ok := <-sigs:
				if !ok {
					sigs = nil
					continue
				}
				fmt.Fprintln(stderr, "\nShutting down server...")
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	<-forwarded

	state := cmd.ProcessState
	if state == nil {
		return fmt.Errorf("wait for server: %w", waitErr)
	}

	code := state.ExitCode()
	out := ui.New(stderr)
	if code < 0 {
		var desc string
		code, desc = signalExit(state)
		out.Error("Server terminated by %s", desc)
		return &ExitError{Code: code}
	}
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return fmt.Errorf("wait for server: %w", waitErr)
	}
	if code != 0 {
		out.Error("Server exited with code %d", code)
		return &ExitError{Code: code}
	}
	return nil
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
