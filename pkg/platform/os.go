// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ErrInvalidHostOS is the sentinel error wrapped by InvalidHostOSError.
var ErrInvalidHostOS = errors.New("invalid host OS")

type (
	// HostOS is a runtime.GOOS value. Every GOOS other than windows and darwin
	// is treated as Linux-like.
	HostOS string

	// InvalidHostOSError is returned when a HostOS value is empty.
	InvalidHostOSError struct {
		Value HostOS
	}
)

// Current returns the operating system the process is running on.
func Current() HostOS {
	return HostOS(runtime.GOOS)
}

// String returns the string representation of the HostOS.
func (o HostOS) String() string { return string(o) }

// IsWindows reports whether o is the Windows family.
func (o HostOS) IsWindows() bool { return o == Windows }

// IsDarwin reports whether o is macOS.
func (o HostOS) IsDarwin() bool { return o == Darwin }

// IsLinuxLike reports whether o is neither Windows nor macOS.
func (o HostOS) IsLinuxLike() bool { return !o.IsWindows() && !o.IsDarwin() }

// IsValid returns whether the HostOS is usable for command construction.
func (o HostOS) IsValid() (bool, []error) {
	if o == "" {
		return false, []error{&InvalidHostOSError{Value: o}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidHostOSError) Error() string {
	return fmt.Sprintf("invalid host OS %q: must be a non-empty GOOS value", e.Value)
}

// Unwrap returns ErrInvalidHostOS for errors.Is() compatibility.
func (e *InvalidHostOSError) Unwrap() error { return ErrInvalidHostOS }
