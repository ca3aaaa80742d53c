// SPDX-License-Identifier: MPL-2.0

package rez

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/rezlaunch/internal/runtime"
)

var (
	// ErrPackageManagerNotFound is the sentinel error wrapped by PackageManagerNotFoundError.
	ErrPackageManagerNotFound = errors.New("rez package manager not found")
	// ErrContextResolve is the sentinel error wrapped by ResolveError.
	ErrContextResolve = errors.New("rez context resolve failed")
)

type (
	// PackageManagerNotFoundError is returned by a strict probe when Rez is not
	// available as a package in the current environment.
	PackageManagerNotFoundError struct {
		// Query is the shell command used to look for Rez.
		Query string
		// ExitCode is the exit status of the query.
		ExitCode runtime.ExitCode
		// Cause is set when the query could not be run at all.
		Cause error
	}

	// ResolveError is returned when rez-env fails to resolve a package list.
	ResolveError struct {
		Packages []string
		ExitCode runtime.ExitCode
		// Stderr is the diagnostic output of rez-env.
		Stderr string
		Cause  error
	}
)

// Error implements the error interface.
func (e *PackageManagerNotFoundError) Error() string {
	msg := fmt.Sprintf("failed to find Rez as a package in the current environment (query %q exited %d)", e.Query, e.ExitCode)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Suggestion returns the usual fix for a missing Rez package.
func (e *PackageManagerNotFoundError) Suggestion() string {
	return "Try 'rez-bind rez'"
}

// Unwrap returns ErrPackageManagerNotFound for errors.Is() compatibility.
func (e *PackageManagerNotFoundError) Unwrap() error { return ErrPackageManagerNotFound }

// Error implements the error interface.
func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("failed to resolve rez packages [%s] (exit %d)", strings.Join(e.Packages, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrContextResolve for errors.Is() compatibility.
func (e *ResolveError) Unwrap() error { return ErrContextResolve }
