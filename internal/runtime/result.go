// SPDX-License-Identifier: MPL-2.0

package runtime

// Result contains the result of a shell execution.
type Result struct {
	// ExitCode is the exit code of the shell process
	ExitCode ExitCode
	// Error is set when the shell could not be run at all
	Error error
	// Output contains captured stdout (if captured)
	Output string
	// ErrOutput contains captured stderr (if captured)
	ErrOutput string
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success returns true if the command executed successfully
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}
