// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invowk/rezlaunch/internal/packages"

	"github.com/spf13/cobra"
)

// newPackagesCommand creates the `rezlaunch packages` command.
func newPackagesCommand(app *App) *cobra.Command {
	var (
		defaults   []string
		noSettings bool
	)

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Print the Rez packages a launch would request",
		Long: `Print the Rez packages a launch would request.

The extra.rez_packages setting overrides the --default list when it is
configured, even when it is an empty list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			var settings packages.SettingsSource = loaded.Config
			if noSettings {
				settings = packages.SettingsMap(nil)
			}
			resolved := packages.NewResolver(app.logger(loaded.Config)).Resolve(defaults, settings)
			return printPackages(app, resolved)
		},
	}

	cmd.Flags().StringArrayVarP(&defaults, "default", "d", nil, "default package (repeatable)")
	cmd.Flags().BoolVar(&noSettings, "no-settings", false, "ignore extra.rez_packages from the configuration")
	return cmd
}

func printPackages(app *App, resolved []string) error {
	if app.jsonOutput {
		enc := json.NewEncoder(app.stdout)
		return enc.Encode(resolved)
	}
	for _, pkg := range resolved {
		fmt.Fprintln(app.stdout, pkg)
	}
	return nil
}
