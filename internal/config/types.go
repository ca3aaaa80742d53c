// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// ExtraSetting names the setting block exposed through Config.Setting.
	ExtraSetting = "extra"

	defaultRezEnvPath     ToolPath = "rez-env"
	defaultRezContextPath ToolPath = "rez-context"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidToolPath is the sentinel error wrapped by InvalidToolPathError.
	ErrInvalidToolPath = errors.New("invalid tool path")
	// ErrInvalidVariableName is the sentinel error wrapped by InvalidVariableNameError.
	ErrInvalidVariableName = errors.New("invalid environment variable name")
	// ErrInvalidLauncherConfig is the sentinel error wrapped by InvalidLauncherConfigError.
	ErrInvalidLauncherConfig = errors.New("invalid launcher config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	variableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ToolPath is an executable name or path. A bare name is looked up on PATH.
	ToolPath string

	// InvalidToolPathError is returned when a ToolPath is empty or whitespace-only.
	InvalidToolPathError struct {
		Value ToolPath
	}

	// VariableName is an environment variable name.
	VariableName string

	// InvalidVariableNameError is returned when a VariableName is not a valid identifier.
	InvalidVariableNameError struct {
		Value VariableName
	}

	// InvalidLauncherConfigError is returned when a LauncherConfig has invalid fields.
	// It wraps ErrInvalidLauncherConfig for errors.Is() compatibility.
	InvalidLauncherConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Extra holds host settings for launch hooks, such as rez_packages.
		Extra map[string]any `json:"extra" mapstructure:"extra" toml:"extra"`
		// Launcher configures application launches and Rez integration
		Launcher LauncherConfig `json:"launcher" mapstructure:"launcher" toml:"launcher"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// LauncherConfig configures application launches.
	LauncherConfig struct {
		// StrictProbe makes a missing Rez installation a hard error for launches
		// that request packages. When false (default), the launch logs a warning
		// and runs the application directly.
		StrictProbe bool `json:"strict_probe" mapstructure:"strict_probe" toml:"strict_probe"`
		// ParentVariables are extended rather than replaced by resolved packages.
		ParentVariables []VariableName `json:"parent_variables" mapstructure:"parent_variables" toml:"parent_variables"`
		// RezEnvPath is the rez-env executable
		RezEnvPath ToolPath `json:"rez_env_path" mapstructure:"rez_env_path" toml:"rez_env_path"`
		// RezContextPath is the rez-context executable
		RezContextPath ToolPath `json:"rez_context_path" mapstructure:"rez_context_path" toml:"rez_context_path"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// Setting returns the named setting block. Only the extra block is exposed;
// other names and an unset extra block return nil. The returned map is a copy.
func (c *Config) Setting(name string) map[string]any {
	if c == nil || name != ExtraSetting || c.Extra == nil {
		return nil
	}
	return maps.Clone(c.Extra)
}

// ParentVariableNames returns the parent variables as plain strings.
func (c LauncherConfig) ParentVariableNames() []string {
	names := make([]string, 0, len(c.ParentVariables))
	for _, v := range c.ParentVariables {
		names = append(names, string(v))
	}
	return names
}

// IsValid returns whether the LauncherConfig has valid fields.
func (c LauncherConfig) IsValid() (bool, []error) {
	var errs []error
	for _, v := range c.ParentVariables {
		if valid, fieldErrs := v.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.RezEnvPath.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.RezContextPath.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidLauncherConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidLauncherConfigError.
func (e *InvalidLauncherConfigError) Error() string {
	return fmt.Sprintf("invalid launcher config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidLauncherConfig for errors.Is() compatibility.
func (e *InvalidLauncherConfigError) Unwrap() error { return ErrInvalidLauncherConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// The extra block is host-defined and not validated here.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Launcher.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ToolPath.
func (p ToolPath) String() string { return string(p) }

// IsValid returns whether the ToolPath is non-empty and not whitespace-only.
func (p ToolPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidToolPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidToolPathError.
func (e *InvalidToolPathError) Error() string {
	return fmt.Sprintf("invalid tool path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidToolPath for errors.Is() compatibility.
func (e *InvalidToolPathError) Unwrap() error { return ErrInvalidToolPath }

// String returns the string representation of the VariableName.
func (n VariableName) String() string { return string(n) }

// IsValid returns whether the VariableName is a valid environment variable identifier.
func (n VariableName) IsValid() (bool, []error) {
	if !variableNamePattern.MatchString(string(n)) {
		return false, []error{&InvalidVariableNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVariableNameError.
func (e *InvalidVariableNameError) Error() string {
	return fmt.Sprintf("invalid environment variable name %q", e.Value)
}

// Unwrap returns ErrInvalidVariableName for errors.Is() compatibility.
func (e *InvalidVariableNameError) Unwrap() error { return ErrInvalidVariableName }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Launcher: LauncherConfig{
			StrictProbe:     false,
			ParentVariables: []VariableName{"PYTHONPATH"},
			RezEnvPath:      defaultRezEnvPath,
			RezContextPath:  defaultRezContextPath,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	slices.Sort(msgs)
	return strings.Join(msgs, "; ")
}
