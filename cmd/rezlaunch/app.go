// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/invowk/rezlaunch/internal/config"
	"github.com/invowk/rezlaunch/internal/rez"
	"github.com/invowk/rezlaunch/internal/runtime"
	"github.com/invowk/rezlaunch/pkg/platform"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. All command handlers
	// receive an App and read configuration through it.
	App struct {
		Config config.Provider
		HostOS platform.HostOS

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// Global flag values.
		verbose    bool
		configPath string
		jsonOutput bool

		// colorScheme is taken from the last loaded configuration.
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		HostOS platform.HostOS
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		HostOS: deps.HostOS,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.HostOS == "" {
		app.HostOS = platform.Current()
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads configuration honoring the --config flag.
func (a *App) loadConfig(ctx context.Context) (*config.LoadResult, error) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return nil, err
	}
	a.colorScheme = loaded.Config.UI.ColorScheme
	return loaded, nil
}

// logger returns the diagnostics logger. Debug output is enabled by
// --verbose or ui.verbose.
func (a *App) logger(cfg *config.Config) *log.Logger {
	level := log.InfoLevel
	if a.isVerbose(cfg) {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

func (a *App) isVerbose(cfg *config.Config) bool {
	return a.verbose || (cfg != nil && cfg.UI.Verbose)
}

// hostShell returns a host shell wired to the App's streams.
func (a *App) hostShell() *runtime.HostShell {
	shell := runtime.NewHostShell(a.HostOS)
	shell.Stdin = a.stdin
	shell.Stdout = a.stdout
	shell.Stderr = a.stderr
	return shell
}

// contextConfig maps launcher configuration onto the Rez resolve configuration.
func contextConfig(cfg *config.Config) rez.ContextConfig {
	return rez.ContextConfig{
		ParentVariables: cfg.Launcher.ParentVariableNames(),
		RezEnvPath:      cfg.Launcher.RezEnvPath.String(),
		RezContextPath:  cfg.Launcher.RezContextPath.String(),
	}
}
