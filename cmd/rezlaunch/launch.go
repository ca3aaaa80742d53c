// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invowk/rezlaunch/internal/launch"
	"github.com/invowk/rezlaunch/internal/packages"
	"github.com/invowk/rezlaunch/internal/runtime"
	"github.com/invowk/rezlaunch/pkg/platform"

	"github.com/spf13/cobra"
)

// newLaunchCommand creates the `rezlaunch launch` command.
func newLaunchCommand(app *App) *cobra.Command {
	var (
		version    string
		engine     string
		pkgs       []string
		noSettings bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "launch [flags] <path> [args...]",
		Short: "Launch an application",
		Long: `Launch an application, inside a Rez context when packages are requested.

Packages given with --package are the defaults; a configured extra.rez_packages
list replaces them. When the package list is non-empty and Rez is found, the
application runs inside the resolved context. Otherwise it is started directly
through the host shell. With launcher.strict_probe or --strict, a missing Rez
installation fails the launch instead.

Arguments after <path> are passed to the application one by one; each is
quoted for the host shell. Flags after <path> are not interpreted by rezlaunch.

rezlaunch exits with the exit code of the shell that started the application.`,
		Example: `  rezlaunch launch -p maya-2024 -p mtoa /usr/autodesk/maya2024/bin/maya -file scene.ma
  rezlaunch launch --json /Applications/Nuke15.0v4/Nuke15.0v4.app --nc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			cfg := loaded.Config
			logger := app.logger(cfg)

			var settings packages.SettingsSource = cfg
			if noSettings {
				settings = packages.SettingsMap(nil)
			}

			req := launch.LaunchRequest{
				ExecutablePath: args[0],
				Arguments:      argumentString(app.HostOS, args[1:]),
				Version:        version,
				Packages:       packages.NewResolver(logger).Resolve(pkgs, settings),
				EngineName:     engine,
			}

			launcher := launch.NewLauncher(app.HostOS, logger,
				launch.WithStrictProbe(strict || cfg.Launcher.StrictProbe),
				launch.WithContextConfig(contextConfig(cfg)),
				launch.WithHostShell(app.hostShell()),
				launch.WithDiagnostics(app.stderr),
			)

			result, err := launcher.Launch(cmd.Context(), req)
			if err != nil {
				return describeRezError(err, "launch application", req.ExecutablePath)
			}

			if err := printLaunchResult(app, result); err != nil {
				return err
			}
			if !result.ExitCode.IsSuccess() {
				return &ExitError{Code: result.ExitCode}
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&version, "version", "", "application version (informational)")
	cmd.Flags().StringVar(&engine, "engine", "", "name of the engine requesting the launch (informational)")
	cmd.Flags().StringArrayVarP(&pkgs, "package", "p", nil, "default Rez package (repeatable)")
	cmd.Flags().BoolVar(&noSettings, "no-settings", false, "ignore extra.rez_packages from the configuration")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when packages are requested and Rez is not found")
	return cmd
}

// argumentString renders args as one argument string for hostOS's shell.
func argumentString(hostOS platform.HostOS, args []string) string {
	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, runtime.QuoteWord(hostOS, a))
	}
	return strings.Join(quoted, " ")
}

func printLaunchResult(app *App, result *launch.LaunchResult) error {
	if app.jsonOutput {
		return json.NewEncoder(app.stdout).Encode(result)
	}
	status := SuccessStyle.Render("✓")
	if !result.ExitCode.IsSuccess() {
		status = ErrorStyle.Render("✗")
	}
	fmt.Fprintf(app.stderr, "%s %s (exit %d)\n", status, CmdStyle.Render(result.Command), result.ExitCode)
	return nil
}
