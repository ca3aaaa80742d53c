// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"io"
	"os"

	"github.com/invowk/rezlaunch/internal/rez"
	"github.com/invowk/rezlaunch/internal/runtime"
	"github.com/invowk/rezlaunch/pkg/platform"

	"github.com/charmbracelet/log"
)

type (
	// Prober detects the Rez package manager.
	Prober interface {
		Detect(ctx context.Context, strict bool) (rez.Handle, error)
	}

	// Launcher launches applications, inside a Rez context when packages are requested.
	Launcher struct {
		os            platform.HostOS
		prober        Prober
		strictProbe   bool
		contextConfig rez.ContextConfig
		shell         *runtime.HostShell
		diagnostics   io.Writer
		logger        *log.Logger
	}

	// Option configures a Launcher.
	Option func(*Launcher)
)

// WithProber replaces the Rez probe.
func WithProber(p Prober) Option {
	return func(l *Launcher) { l.prober = p }
}

// WithStrictProbe makes a missing Rez installation abort launches that request packages.
func WithStrictProbe(strict bool) Option {
	return func(l *Launcher) { l.strictProbe = strict }
}

// WithContextConfig sets the configuration passed to Rez resolves.
func WithContextConfig(cfg rez.ContextConfig) Option {
	return func(l *Launcher) { l.contextConfig = cfg }
}

// WithHostShell sets the shell used for direct launches and the output
// streams of launched applications.
func WithHostShell(shell *runtime.HostShell) Option {
	return func(l *Launcher) { l.shell = shell }
}

// WithDiagnostics sets where Rez context descriptions are written.
func WithDiagnostics(w io.Writer) Option {
	return func(l *Launcher) { l.diagnostics = w }
}

// NewLauncher creates a Launcher for hostOS. A nil logger discards diagnostics.
func NewLauncher(hostOS platform.HostOS, logger *log.Logger, opts ...Option) *Launcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Launcher{
		os:            hostOS,
		contextConfig: rez.DefaultContextConfig(),
		diagnostics:   os.Stderr,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.shell == nil {
		l.shell = runtime.NewHostShell(hostOS)
	}
	if l.prober == nil {
		l.prober = rez.NewProbe(hostOS, logger, rez.WithRezEnv(l.contextConfig.RezEnvPath), rez.WithShell(l.probeShell()))
	}
	return l
}

// Launch starts the requested application and reports the command string
// and the exit code of the shell that ran it.
func (l *Launcher) Launch(ctx context.Context, req LaunchRequest) (*LaunchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.withPackages()

	spec := NewCommandSpec(l.os, req.ExecutablePath, req.Arguments)
	provider, err := l.SelectProvider(ctx, req.Packages)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("launching application",
		"path", req.ExecutablePath,
		"version", req.Version,
		"engine", req.EngineName,
		"provider", provider.Name())

	code, err := provider.Run(ctx, spec.String(), spec.Shell)
	if err != nil {
		return nil, err
	}
	return &LaunchResult{Command: spec.String(), ExitCode: code}, nil
}

// SelectProvider picks the environment provider for packages. Rez is probed
// only when packages is non-empty, and probed again on every call.
func (l *Launcher) SelectProvider(ctx context.Context, packages []string) (EnvironmentProvider, error) {
	if len(packages) == 0 {
		return NewNullProvider(l.shell, l.logger), nil
	}

	handle, err := l.prober.Detect(ctx, l.strictProbe)
	if err != nil {
		return nil, err
	}
	if !handle.Found() {
		return NewNullProvider(l.shell, l.logger), nil
	}

	cfg := l.contextConfig
	if cfg.Sandbox == platform.SandboxNone {
		cfg.Sandbox = l.shell.Sandbox
	}
	return &ManagedProvider{
		Packages:    packages,
		Config:      cfg,
		stdout:      l.shell.Stdout,
		stderr:      l.shell.Stderr,
		diagnostics: l.diagnostics,
		logger:      l.logger,
	}, nil
}

// probeShell returns a copy of the launch shell for the probe query.
// The probe captures its own output, so the copy has no streams.
func (l *Launcher) probeShell() *runtime.HostShell {
	shell := *l.shell
	shell.Stdin, shell.Stdout, shell.Stderr = nil, nil, nil
	return &shell
}
