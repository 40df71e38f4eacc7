//go:build windows

package launcher

import "os"

func signalExit(*os.ProcessState) (int, string) {
	return 1, "an unknown signal"
}
