//go:build !windows

package launcher

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// signalExit maps death by signal to the shell convention of 128+n.
func signalExit(state *os.ProcessState) (int, string) {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 1, "an unknown signal"
	}
	return 128 + int(ws.Signal()), describeSignal(ws.Signal())
}

func describeSignal(sig syscall.Signal) string {
	name := unix.SignalName(sig)
	if name == "" {
		return fmt.Sprintf("signal %d", sig)
	}
	return fmt.Sprintf("%s (%d)", name, sig)
}
