// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

const (
	// ExtraSetting is the name of the setting block holding launch extras.
	ExtraSetting = "extra"
	// RezPackagesKey is the key inside ExtraSetting listing Rez packages.
	RezPackagesKey = "rez_packages"
)

type (
	// SettingsSource is the key-value configuration exposed by the host framework.
	SettingsSource interface {
		// Setting returns the named setting block, or nil when it is not configured.
		Setting(name string) map[string]any
	}

	// SettingsMap is a SettingsSource backed by a plain map, keyed by setting name.
	SettingsMap map[string]map[string]any

	// Resolver resolves package lists against a settings source.
	Resolver struct {
		logger *log.Logger
	}
)

// Setting implements SettingsSource.
func (m SettingsMap) Setting(name string) map[string]any {
	return m[name]
}

// NewResolver creates a Resolver. A nil logger discards diagnostics.
func NewResolver(logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{logger: logger}
}

// Resolve returns the package list for the current launch.
//
// A configured extra.rez_packages list wins over defaults, even when it is
// empty. The result is never nil and never aliases the inputs.
func (r *Resolver) Resolve(defaults []string, settings SettingsSource) []string {
	if configured, ok := r.configuredPackages(settings); ok {
		r.logger.Debug("using packages from settings", "packages", configured)
		return configured
	}

	if defaults == nil {
		return []string{}
	}
	r.logger.Debug("using default packages", "packages", defaults)
	return slices.Clone(defaults)
}

// Resolve resolves packages without logging.
func Resolve(defaults []string, settings SettingsSource) []string {
	return NewResolver(nil).Resolve(defaults, settings)
}

func (r *Resolver) configuredPackages(settings SettingsSource) ([]string, bool) {
	if settings == nil {
		return nil, false
	}
	extra := settings.Setting(ExtraSetting)
	if extra == nil {
		return nil, false
	}
	value, ok := extra[RezPackagesKey]
	if !ok || value == nil {
		return nil, false
	}

	pkgs, ok := toStrings(value)
	if !ok {
		r.logger.Debug("ignoring malformed setting", "key", ExtraSetting+"."+RezPackagesKey, "value", value)
		return nil, false
	}
	return pkgs, true
}

// toStrings converts a decoded setting value into a package list.
// A lone string is a one-element list.
func toStrings(value any) ([]string, bool) {
	switch v := value.(type) {
	case string:
		return []string{v}, true
	case []string:
		return append([]string{}, v...), true
	case []any:
		pkgs := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			pkgs = append(pkgs, s)
		}
		return pkgs, true
	default:
		return nil, false
	}
}
