// SPDX-License-Identifier: MPL-2.0

package rez

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/invowk/rezlaunch/internal/runtime"
	"github.com/invowk/rezlaunch/pkg/platform"
)

const (
	// DefaultRezEnv is the rez-env executable looked up on PATH.
	DefaultRezEnv = "rez-env"
	// DefaultRezContext is the rez-context executable looked up on PATH.
	DefaultRezContext = "rez-context"
	// ParentVariablesEnv lists the variables a resolved context appends to
	// instead of overwriting.
	ParentVariablesEnv = "REZ_PARENT_VARIABLES"

	contextFileName = "context.rxt"
)

type (
	// ContextConfig is the Rez configuration applied to a single resolve.
	ContextConfig struct {
		// ParentVariables are inherited from the parent environment and
		// extended, not replaced, by the resolved packages.
		ParentVariables []string
		// RezEnvPath is the rez-env executable. Empty means DefaultRezEnv.
		RezEnvPath string
		// RezContextPath is the rez-context executable. Empty means DefaultRezContext.
		RezContextPath string
		// Environ is the environment rez-env resolves in. Nil uses the current process environment.
		Environ []string
		// Sandbox is the sandbox the Rez tools are spawned from. Empty detects it.
		Sandbox platform.SandboxType
	}

	// ResolvedContext is a package list resolved into a Rez context file.
	// Close removes the file.
	ResolvedContext struct {
		packages []string
		dir      string
		file     string
		cfg      ContextConfig
		sandbox  platform.SandboxType
	}

	// ShellOptions configures ExecuteShell.
	ShellOptions struct {
		// Command is run by the context's shell.
		Command string
		// ParentEnviron is the environment the context is applied on top of.
		// Nil uses a copy of the current process environment.
		ParentEnviron []string
		// Shell is the shell family rez-env starts.
		Shell runtime.ShellType
		// Stdin makes the shell read commands from standard input.
		Stdin bool
		// Block waits for the shell to exit before returning.
		Block bool

		Stdout io.Writer
		Stderr io.Writer
	}

	// Process is a shell spawned inside a resolved context.
	Process struct {
		cmd      *exec.Cmd
		waitOnce sync.Once
		code     runtime.ExitCode
		err      error
	}
)

// DefaultContextConfig returns the configuration used when nothing is configured.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		ParentVariables: []string{"PYTHONPATH"},
		RezEnvPath:      DefaultRezEnv,
		RezContextPath:  DefaultRezContext,
	}
}

// ParentVariablesValue renders ParentVariables the way REZ_PARENT_VARIABLES expects them.
func (c ContextConfig) ParentVariablesValue() string {
	return strings.Join(c.ParentVariables, ",")
}

func (c ContextConfig) rezEnv() string {
	if c.RezEnvPath != "" {
		return c.RezEnvPath
	}
	return DefaultRezEnv
}

func (c ContextConfig) sandbox() platform.SandboxType {
	if c.Sandbox != platform.SandboxNone {
		return c.Sandbox
	}
	return platform.DetectSandbox()
}

// environ returns the environment the Rez tools run in.
func (c ContextConfig) environ(base []string) []string {
	if base == nil {
		base = c.Environ
	}
	if base == nil {
		base = runtime.CopyEnviron()
	}
	return runtime.SetEnv(base, ParentVariablesEnv, c.ParentVariablesValue())
}

func (c ContextConfig) rezContext() string {
	if c.RezContextPath != "" {
		return c.RezContextPath
	}
	return DefaultRezContext
}

// Resolve resolves packages into a context file with rez-env.
// The caller must Close the returned context.
func Resolve(ctx context.Context, packages []string, cfg ContextConfig) (*ResolvedContext, error) {
	dir, err := os.MkdirTemp("", "rezlaunch-")
	if err != nil {
		return nil, fmt.Errorf("failed to create context directory: %w", err)
	}

	rc := &ResolvedContext{
		packages: slices.Clone(packages),
		dir:      dir,
		file:     filepath.Join(dir, contextFileName),
		cfg:      cfg,
		sandbox:  cfg.sandbox(),
	}

	args := append(slices.Clone(packages), "--output", rc.file)
	cmd := rc.command(ctx, cfg.environ(nil), cfg.rezEnv(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	code, runErr := runtime.ExitCodeFromError(cmd.Run())
	if runErr != nil || !code.IsSuccess() {
		_ = os.RemoveAll(dir)
		return nil, &ResolveError{
			Packages: rc.packages,
			ExitCode: code,
			Stderr:   stderr.String(),
			Cause:    runErr,
		}
	}
	return rc, nil
}

// Packages returns the requested package list.
func (rc *ResolvedContext) Packages() []string { return slices.Clone(rc.packages) }

// File returns the path of the serialized context.
func (rc *ResolvedContext) File() string { return rc.file }

// ExecuteShell spawns a shell inside the context that runs opts.Command.
// Without opts.Block the returned Process is running and the caller must Wait on it.
func (rc *ResolvedContext) ExecuteShell(ctx context.Context, opts ShellOptions) (*Process, error) {
	if ok, errs := opts.Shell.IsValid(); !ok {
		return nil, errs[0]
	}

	args := []string{"--input", rc.file, "--shell", opts.Shell.String(), "--command", opts.Command}
	if opts.Stdin {
		args = append(args, "--stdin")
	}

	parent := opts.ParentEnviron
	if parent == nil {
		parent = runtime.CopyEnviron()
	}

	cmd := rc.command(ctx, rc.cfg.environ(parent), rc.cfg.rezEnv(), args...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if opts.Stdin {
		cmd.Stdin = os.Stdin
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start rez shell: %w", err)
	}

	p := &Process{cmd: cmd}
	if opts.Block {
		_, _ = p.Wait()
	}
	return p, nil
}

// PrintInfo writes the rez-context description of the context to w.
func (rc *ResolvedContext) PrintInfo(ctx context.Context, w io.Writer, verbose bool) error {
	var args []string
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, rc.file)

	cmd := rc.command(ctx, rc.cfg.environ(nil), rc.cfg.rezContext(), args...)
	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to print rez context info: %w", err)
	}
	return nil
}

// Close removes the context file.
func (rc *ResolvedContext) Close() error {
	if rc.dir == "" {
		return nil
	}
	err := os.RemoveAll(rc.dir)
	rc.dir = ""
	return err
}

// command builds a Rez tool invocation. Inside a sandbox environ is handed
// to the spawn helper so it reaches the host process.
func (rc *ResolvedContext) command(ctx context.Context, environ []string, name string, args ...string) *exec.Cmd {
	return runtime.HostCommand(ctx, rc.sandbox, environ, name, args...)
}

// Pid returns the process id of the spawned shell.
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Wait blocks until the shell exits and returns its exit code.
// It is safe to call more than once.
func (p *Process) Wait() (runtime.ExitCode, error) {
	p.waitOnce.Do(func() {
		p.code, p.err = runtime.ExitCodeFromError(p.cmd.Wait())
	})
	return p.code, p.err
}
