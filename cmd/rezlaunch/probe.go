// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invowk/rezlaunch/internal/rez"

	"github.com/spf13/cobra"
)

type probeOutput struct {
	Found bool   `json:"found"`
	Root  string `json:"root,omitempty"`
}

// newProbeCommand creates the `rezlaunch probe` command.
func newProbeCommand(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check whether Rez is available as a package",
		Long: `Check whether Rez is available as a package in the current environment.

Prints the rez package root and exits 0 when Rez is found. Otherwise exits 1;
with --strict the failure is reported as an error with suggestions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			cfg := loaded.Config

			probe := rez.NewProbe(app.HostOS, app.logger(cfg),
				rez.WithRezEnv(cfg.Launcher.RezEnvPath.String()),
				rez.WithShell(app.hostShell()),
			)
			handle, err := probe.Detect(cmd.Context(), strict)
			if err != nil {
				return describeRezError(err, "find rez", cfg.Launcher.RezEnvPath.String())
			}

			if app.jsonOutput {
				if err := json.NewEncoder(app.stdout).Encode(probeOutput{Found: handle.Found(), Root: handle.RootPath}); err != nil {
					return err
				}
			} else if handle.Found() {
				fmt.Fprintln(app.stdout, handle.RootPath)
			} else {
				fmt.Fprintln(app.stderr, WarningStyle.Render("Rez not found"))
			}

			if !handle.Found() {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "report a missing Rez as an error")
	return cmd
}
