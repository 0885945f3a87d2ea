//go:build unix

package process

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// extractResult pulls the exit code and terminating signal out of a
// POSIX wait status, via unix.WaitStatus rather than re-deriving the
// same bit layout by hand. Errno is set to the signal's number; no OS
// errno is read, and a launch failure comes back as Run's error instead.
func extractResult(ps *os.ProcessState) Result {
	if ps == nil {
		return Result{ExitCode: -1}
	}
	sys, ok := ps.Sys().(syscall.WaitStatus)
	if !ok {
		return Result{ExitCode: ps.ExitCode()}
	}
	ws := unix.WaitStatus(sys)
	res := Result{ExitCode: -1}
	switch {
	case ws.Exited():
		res.ExitCode = ws.ExitStatus()
	case ws.Signaled():
		res.Signaled = true
		res.Signal = ws.Signal().String()
		res.Errno = int(ws.Signal())
	}
	return res
}
