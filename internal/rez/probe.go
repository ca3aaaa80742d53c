// SPDX-License-Identifier: MPL-2.0

package rez

import (
	"context"
	"io"
	"strings"

	"github.com/invowk/rezlaunch/internal/runtime"
	"github.com/invowk/rezlaunch/pkg/platform"

	"github.com/charmbracelet/log"
)

// rootVariable holds the install root of the rez package inside a rez-env shell.
const rootVariable = "REZ_REZ_ROOT"

type (
	// Handle is the result of a probe. An empty RootPath means Rez was not found.
	Handle struct {
		RootPath string
	}

	// Probe detects Rez in the current environment.
	Probe struct {
		os     platform.HostOS
		rezEnv string
		shell  *runtime.HostShell
		logger *log.Logger
	}

	// ProbeOption configures a Probe.
	ProbeOption func(*Probe)
)

// Found reports whether the probe located Rez.
func (h Handle) Found() bool { return h.RootPath != "" }

// WithRezEnv sets the rez-env executable used by the query.
func WithRezEnv(path string) ProbeOption {
	return func(p *Probe) {
		if path != "" {
			p.rezEnv = path
		}
	}
}

// WithShell sets the host shell the query runs in.
func WithShell(shell *runtime.HostShell) ProbeOption {
	return func(p *Probe) {
		p.shell = shell
	}
}

// NewProbe creates a Probe for hostOS. A nil logger discards diagnostics.
func NewProbe(hostOS platform.HostOS, logger *log.Logger, opts ...ProbeOption) *Probe {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Probe{
		os:     hostOS,
		rezEnv: DefaultRezEnv,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.shell == nil {
		p.shell = runtime.NewHostShell(hostOS)
	}
	return p
}

// QueryCommand returns the shell command that prints the rez package root.
func QueryCommand(hostOS platform.HostOS, rezEnv string) string {
	exe := runtime.QuoteWord(hostOS, rezEnv)
	if hostOS.IsWindows() {
		return exe + " rez -- echo %" + rootVariable + "%"
	}
	return exe + " rez -- printenv " + rootVariable
}

// Detect looks for Rez as a package in the current environment.
//
// When Rez is not found, a strict probe returns a *PackageManagerNotFoundError;
// a non-strict probe logs a warning and returns an empty Handle with a nil error.
func (p *Probe) Detect(ctx context.Context, strict bool) (Handle, error) {
	query := QueryCommand(p.os, p.rezEnv)
	result := p.shell.Capture(ctx, query)

	root := strings.TrimSpace(result.Output)
	// cmd.exe echoes the literal %VAR% when the variable is unset.
	if root == "%"+rootVariable+"%" {
		root = ""
	}

	if result.Error != nil || !result.ExitCode.IsSuccess() || root == "" {
		notFound := &PackageManagerNotFoundError{
			Query:    query,
			ExitCode: result.ExitCode,
			Cause:    result.Error,
		}
		if strict {
			return Handle{}, notFound
		}
		p.logger.Warn("failed to find a Rez package in the current environment; unable to request Rez packages",
			"query", query, "exit_code", result.ExitCode)
		return Handle{}, nil
	}

	p.logger.Info("found Rez", "root", root)
	return Handle{RootPath: root}, nil
}
