// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"os/exec"

	"github.com/invowk/rezlaunch/pkg/platform"
)

// ExitCodeFromError determines the exit code from a process wait error.
//
// A nil error is exit code 0, and so is exec.ErrWaitDelay: the process
// succeeded and only a background child still held its output. An
// *exec.ExitError yields the process exit status. On POSIX hosts a status
// outside 0-255 (e.g. -1 for a signal) is reported as 1 together with the
// validation error; Windows statuses such as NTSTATUS values are kept. Any
// other error means the process never ran and is reported as exit code 1
// with the error.
func ExitCodeFromError(err error) (ExitCode, error) {
	return exitCodeFromError(err, platform.Current())
}

func exitCodeFromError(err error, hostOS platform.HostOS) (ExitCode, error) {
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr.ExitCode(), hostOS)
	}

	// Some other error (e.g., shell not found, permission denied)
	return 1, err
}

func exitStatus(status int, hostOS platform.HostOS) (ExitCode, error) {
	code := ExitCode(status)
	if hostOS.IsWindows() && code >= 0 {
		return code, nil
	}
	if valid, errs := code.IsValid(); !valid {
		return 1, errs[0]
	}
	return code, nil
}
