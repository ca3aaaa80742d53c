// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/rezlaunch/internal/config"
	"github.com/invowk/rezlaunch/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the rezlaunch command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Launch applications inside Rez-resolved environments",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - Launch applications inside Rez-resolved environments") + `

rezlaunch resolves the Rez packages a launch needs, from the defaults given on
the command line or the extra.rez_packages setting, and starts the application
inside the resolved context. When no packages are requested, or Rez is not
available, the application is started directly through the host shell.

` + SubtitleStyle.Render("Examples:") + `
  rezlaunch packages --default maya-2024            Show the packages a launch would use
  rezlaunch launch -p maya-2024 /usr/autodesk/maya  Launch Maya inside a Rez context
  rezlaunch probe                                   Check whether Rez is available
  rezlaunch config show                             Show current configuration`,
		SilenceUsage: true,
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $HOME/.config/rezlaunch/config.cue)")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(newPackagesCommand(app))
	rootCmd.AddCommand(newLaunchCommand(app))
	rootCmd.AddCommand(newProbeCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with its status.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// handleError prints err for the user. An ExitError without a cause exits
// silently; errors linked to a catalog issue also print the issue guidance.
func (a *App) handleError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	if known := issue.IssueOf(err); known != nil {
		if rendered, renderErr := known.Render(issueStyle(a.colorScheme)); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// issueStyle maps a color scheme to a glamour style name.
func issueStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark, config.ColorSchemeLight:
		return scheme.String()
	default:
		return "auto"
	}
}
