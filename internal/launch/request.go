// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"slices"

	"github.com/invowk/rezlaunch/internal/runtime"
)

// Result map keys.
const (
	CommandKey    = "command"
	ReturnCodeKey = "return_code"
)

// ErrEmptyExecutablePath is returned when a LaunchRequest has no executable.
var ErrEmptyExecutablePath = errors.New("executable path must not be empty")

type (
	// LaunchRequest describes one application launch.
	LaunchRequest struct {
		// ExecutablePath is the application to start. On macOS a path ending in
		// .app is opened as a bundle.
		ExecutablePath string
		// Arguments is appended to the command string as is.
		Arguments string
		// Version is the application version, used for diagnostics only.
		Version string
		// Packages are the Rez packages to launch in. Empty launches directly.
		Packages []string
		// EngineName names the host engine requesting the launch.
		EngineName string
	}

	// LaunchResult is what a launch reports back to the host.
	LaunchResult struct {
		Command  string           `json:"command"`
		ExitCode runtime.ExitCode `json:"return_code"`
	}
)

// Validate checks that the request can be launched.
func (r LaunchRequest) Validate() error {
	if r.ExecutablePath == "" {
		return ErrEmptyExecutablePath
	}
	return nil
}

// withPackages returns a copy of r owning its package slice.
func (r LaunchRequest) withPackages() LaunchRequest {
	r.Packages = slices.Clone(r.Packages)
	return r
}

// AsMap returns the result keyed by CommandKey and ReturnCodeKey.
func (r *LaunchResult) AsMap() map[string]any {
	return map[string]any{
		CommandKey:    r.Command,
		ReturnCodeKey: int(r.ExitCode),
	}
}
