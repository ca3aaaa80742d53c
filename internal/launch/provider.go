// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"io"
	"os"

	"github.com/invowk/rezlaunch/internal/rez"
	"github.com/invowk/rezlaunch/internal/runtime"

	"github.com/charmbracelet/log"
)

// Provider names, as logged.
const (
	NullProviderName    = "direct"
	ManagedProviderName = "rez"
)

type (
	// EnvironmentProvider runs a command string in some environment and
	// reports the exit code of the shell.
	//
	// An error means the launch could not be attempted (e.g. the Rez
	// context failed to resolve). A shell that fails to start is reported as
	// exit code 1 with a nil error.
	EnvironmentProvider interface {
		Name() string
		Run(ctx context.Context, command string, shell runtime.ShellType) (runtime.ExitCode, error)
	}

	// NullProvider runs commands directly through the host shell.
	NullProvider struct {
		shell  *runtime.HostShell
		logger *log.Logger
	}

	// ManagedProvider runs commands in a Rez context resolved from Packages.
	ManagedProvider struct {
		Packages []string
		Config   rez.ContextConfig

		stdout      io.Writer
		stderr      io.Writer
		diagnostics io.Writer
		logger      *log.Logger
	}
)

// NewNullProvider creates a NullProvider running commands with shell.
func NewNullProvider(shell *runtime.HostShell, logger *log.Logger) *NullProvider {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &NullProvider{shell: shell, logger: logger}
}

// Name implements EnvironmentProvider.
func (p *NullProvider) Name() string { return NullProviderName }

// Run executes command synchronously. The shell family is implied by the
// host shell and shell is only logged.
func (p *NullProvider) Run(ctx context.Context, command string, shell runtime.ShellType) (runtime.ExitCode, error) {
	p.logger.Debug("executing command", "command", command, "shell", shell)
	result := p.shell.Run(ctx, command)
	if result.Error != nil {
		p.logger.Error("failed to run command", "command", command, "err", result.Error)
	}
	return result.ExitCode, nil
}

// Name implements EnvironmentProvider.
func (p *ManagedProvider) Name() string { return ManagedProviderName }

// Run resolves the packages, runs command in the resolved context and waits
// for it. The context description is written to the diagnostics writer.
func (p *ManagedProvider) Run(ctx context.Context, command string, shell runtime.ShellType) (runtime.ExitCode, error) {
	logger := p.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	logger.Debug("resolving rez context", "packages", p.Packages)
	rc, err := rez.Resolve(ctx, p.Packages, p.Config)
	if err != nil {
		return 1, err
	}
	logger.Debug("resolved rez context", "packages", rc.Packages(), "file", rc.File())
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			logger.Warn("failed to remove rez context file", "file", rc.File(), "err", closeErr)
		}
	}()

	logger.Debug("executing command in rez context", "command", command, "shell", shell)
	proc, err := rc.ExecuteShell(ctx, rez.ShellOptions{
		Command:       command,
		ParentEnviron: runtime.CopyEnviron(),
		Shell:         shell,
		Stdout:        p.output(p.stdout, os.Stdout),
		Stderr:        p.output(p.stderr, os.Stderr),
	})
	if err != nil {
		logger.Error("failed to start rez shell", "command", command, "err", err)
		return 1, nil
	}
	logger.Debug("started rez shell", "pid", proc.Pid())

	code, err := proc.Wait()
	if err != nil {
		logger.Error("rez shell ended abnormally", "command", command, "err", err)
	}

	if infoErr := rc.PrintInfo(ctx, p.output(p.diagnostics, os.Stderr), true); infoErr != nil {
		logger.Warn("failed to print rez context info", "err", infoErr)
	}
	return code, nil
}

func (p *ManagedProvider) output(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
