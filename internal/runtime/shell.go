// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/invowk/rezlaunch/pkg/platform"
)

// Shell type constants name the interpreter a command string is written for.
const (
	// ShellBash is the POSIX shell family used on Linux and macOS.
	ShellBash ShellType = "bash"
	// ShellCmd is the Windows command interpreter.
	ShellCmd ShellType = "cmd"
)

// ErrInvalidShellType is the sentinel error wrapped by InvalidShellTypeError.
var ErrInvalidShellType = errors.New("invalid shell type")

type (
	// ShellType identifies a command interpreter family.
	ShellType string

	// InvalidShellTypeError is returned when a ShellType value is not recognized.
	InvalidShellTypeError struct {
		Value ShellType
	}

	// HostShell runs command strings through the host's default shell.
	// The zero value is not usable; use NewHostShell.
	HostShell struct {
		// OS selects the interpreter: cmd /C on Windows, sh -c elsewhere.
		OS platform.HostOS
		// Shell overrides the interpreter binary.
		Shell string
		// Env is the child environment. Nil inherits the current process environment.
		Env []string
		// Sandbox makes the shell run on the host when the process is sandboxed.
		Sandbox platform.SandboxType
		// WaitDelay overrides DefaultWaitDelay when positive.
		WaitDelay time.Duration

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// ShellTypeFor returns the shell family command strings use on hostOS.
func ShellTypeFor(hostOS platform.HostOS) ShellType {
	if hostOS.IsWindows() {
		return ShellCmd
	}
	return ShellBash
}

// String returns the string representation of the ShellType.
func (s ShellType) String() string { return string(s) }

// IsValid returns whether the ShellType is a recognized shell family.
func (s ShellType) IsValid() (bool, []error) {
	switch s {
	case ShellBash, ShellCmd:
		return true, nil
	default:
		return false, []error{&InvalidShellTypeError{Value: s}}
	}
}

// Error implements the error interface.
func (e *InvalidShellTypeError) Error() string {
	return fmt.Sprintf("invalid shell type %q (valid: bash, cmd)", e.Value)
}

// Unwrap returns ErrInvalidShellType for errors.Is() compatibility.
func (e *InvalidShellTypeError) Unwrap() error { return ErrInvalidShellType }

// NewHostShell creates a HostShell for hostOS wired to the process's standard streams.
func NewHostShell(hostOS platform.HostOS) *HostShell {
	return &HostShell{
		OS:      hostOS,
		Sandbox: platform.DetectSandbox(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Command builds the exec.Cmd that runs script through the host shell.
func (s *HostShell) Command(ctx context.Context, script string) *exec.Cmd {
	args := append(s.shellArgs(), script)
	cmd := HostCommand(ctx, s.Sandbox, s.Env, s.shellPath(), args...)
	if s.OS.IsWindows() && s.Shell == "" && s.Sandbox == platform.SandboxNone {
		setRawCommandLine(cmd, script)
	}
	if s.WaitDelay > 0 {
		cmd.WaitDelay = s.WaitDelay
	}
	return cmd
}

// Run executes script and blocks until the shell returns.
// Output streams to the HostShell writers.
func (s *HostShell) Run(ctx context.Context, script string) *Result {
	cmd := s.Command(ctx, script)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	code, err := ExitCodeFromError(cmd.Run())
	if err != nil {
		return NewErrorResult(code, fmt.Errorf("failed to execute command: %w", err))
	}
	return NewExitCodeResult(code)
}

// Capture executes script and captures its stdout and stderr.
// Stdin is not connected.
func (s *HostShell) Capture(ctx context.Context, script string) *Result {
	cmd := s.Command(ctx, script)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code, err := ExitCodeFromError(cmd.Run())
	return &Result{
		ExitCode:  code,
		Error:     err,
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}
}

func (s *HostShell) shellPath() string {
	if s.Shell != "" {
		return s.Shell
	}
	if s.OS.IsWindows() {
		return "cmd"
	}
	return "/bin/sh"
}

func (s *HostShell) shellArgs() []string {
	if s.OS.IsWindows() {
		return []string{"/C"}
	}
	return []string{"-c"}
}
