//go:build !unix

package process

import "os"

// extractResult is the portable fallback for platforms without a
// POSIX wait status to decode: os.ProcessState's own ExitCode is all
// that's available, so Signaled/Errno stay at their zero values.
func extractResult(ps *os.ProcessState) Result {
	if ps == nil {
		return Result{ExitCode: -1}
	}
	return Result{ExitCode: ps.ExitCode()}
}
