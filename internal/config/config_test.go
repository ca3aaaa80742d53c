// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/rezlaunch/internal/issue"
	"github.com/invowk/rezlaunch/internal/testutil"
	"github.com/invowk/rezlaunch/pkg/platform"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, path, []byte(content), 0o644)
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Launcher.StrictProbe {
		t.Error("expected strict probe to be disabled by default")
	}
	if !slices.Equal(cfg.Launcher.ParentVariableNames(), []string{"PYTHONPATH"}) {
		t.Errorf("ParentVariables = %v, want [PYTHONPATH]", cfg.Launcher.ParentVariables)
	}
	if cfg.Launcher.RezEnvPath != "rez-env" || cfg.Launcher.RezContextPath != "rez-context" {
		t.Errorf("tool paths = %q, %q", cfg.Launcher.RezEnvPath, cfg.Launcher.RezContextPath)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.Setting(ExtraSetting) != nil {
		t.Error("expected no extra settings by default")
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig().IsValid() = false: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if platform.Current() != platform.Linux {
		t.Skip("XDG_CONFIG_HOME is only honored on Linux")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	SetConfigDirOverride("/override")
	t.Cleanup(Reset)
	if dir, _ = ConfigDir(); dir != "/override" {
		t.Errorf("ConfigDir() with override = %s, want /override", dir)
	}
}

func TestConfigDirHomeFallback(t *testing.T) {
	var want []string
	switch platform.Current() {
	case platform.Linux:
		t.Setenv("XDG_CONFIG_HOME", "")
		want = []string{".config", AppName}
	case platform.Darwin:
		want = []string{"Library", "Application Support", AppName}
	default:
		t.Skip("Windows resolves the config dir from APPDATA")
	}

	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if expected := filepath.Join(append([]string{home}, want...)...); dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	result, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Path != "" {
		t.Errorf("Path = %q, want empty", result.Path)
	}
	if result.Config.Launcher.RezEnvPath != "rez-env" {
		t.Errorf("RezEnvPath = %q, want rez-env", result.Config.Launcher.RezEnvPath)
	}
	if !slices.Equal(result.Config.Launcher.ParentVariableNames(), []string{"PYTHONPATH"}) {
		t.Errorf("ParentVariables = %v", result.Config.Launcher.ParentVariables)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
extra: {
	rez_packages: ["maya-2024", "mtoa"]
	studio: "acme"
}
launcher: {
	strict_probe: true
	parent_variables: ["PYTHONPATH", "MAYA_MODULE_PATH"]
	rez_env_path: "/opt/rez/bin/rez-env"
}
ui: verbose: true
`)

	result, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := result.Config

	if result.Path != path {
		t.Errorf("Path = %q, want %q", result.Path, path)
	}
	if !cfg.Launcher.StrictProbe {
		t.Error("StrictProbe = false, want true")
	}
	if !slices.Equal(cfg.Launcher.ParentVariableNames(), []string{"PYTHONPATH", "MAYA_MODULE_PATH"}) {
		t.Errorf("ParentVariables = %v", cfg.Launcher.ParentVariables)
	}
	if cfg.Launcher.RezEnvPath != "/opt/rez/bin/rez-env" {
		t.Errorf("RezEnvPath = %q", cfg.Launcher.RezEnvPath)
	}
	if cfg.Launcher.RezContextPath != "rez-context" {
		t.Errorf("RezContextPath = %q, want the default", cfg.Launcher.RezContextPath)
	}
	if !cfg.UI.Verbose || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI = %+v", cfg.UI)
	}

	extra := cfg.Setting(ExtraSetting)
	if extra == nil {
		t.Fatal("Setting(extra) = nil")
	}
	if got := toStringList(extra["rez_packages"]); !slices.Equal(got, []string{"maya-2024", "mtoa"}) {
		t.Errorf("rez_packages = %v", extra["rez_packages"])
	}
	if extra["studio"] != "acme" {
		t.Errorf("studio = %v, want acme", extra["studio"])
	}
	if cfg.Setting("launcher") != nil {
		t.Error("Setting(launcher) should be nil")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `ui: color_scheme: "dark"`)
	result, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path, ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Path != path || result.Config.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("Load() = %q, %+v", result.Path, result.Config.UI)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error type = %T, want *issue.ActionableError", err)
	}
	if actionable.Resource != missing {
		t.Errorf("Resource = %q, want %q", actionable.Resource, missing)
	}
	if !actionable.HasSuggestions() {
		t.Error("expected suggestions on a missing config file error")
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", `launcher: retries: 3`, "launcher.retries"},
		{"bad color scheme", `ui: color_scheme: "neon"`, "ui.color_scheme"},
		{"packages not a list", `extra: rez_packages: "maya"`, "extra.rez_packages"},
		{"bad variable name", `launcher: parent_variables: ["NOT VALID"]`, "launcher.parent_variables[0]"},
		{"empty tool path", `launcher: rez_env_path: ""`, "launcher.rez_env_path"},
		{"syntax error", `launcher: {`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("Load() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REZLAUNCH_LAUNCHER_STRICT_PROBE", "true")
	t.Setenv("REZLAUNCH_LAUNCHER_REZ_ENV_PATH", "/env/rez-env")

	result, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !result.Config.Launcher.StrictProbe {
		t.Error("StrictProbe = false, want true from environment")
	}
	if result.Config.Launcher.RezEnvPath != "/env/rez-env" {
		t.Errorf("RezEnvPath = %q, want /env/rez-env", result.Config.Launcher.RezEnvPath)
	}
}

func TestLoadCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfigRoundTrip(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, created, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created {
		t.Error("created = false on first call")
	}

	if _, created, err = CreateDefaultConfig(dir); err != nil || created {
		t.Errorf("second CreateDefaultConfig() = %v, %v; want false, nil", created, err)
	}

	testutil.MustWriteFile(t, path, []byte(GenerateCUE(&Config{
		Extra:    map[string]any{"rez_packages": []string{"houdini"}},
		Launcher: DefaultConfig().Launcher,
		UI:       UIConfig{ColorScheme: ColorSchemeLight},
	})), 0o644)

	result, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() of generated config error = %v", err)
	}
	if got := toStringList(result.Config.Extra["rez_packages"]); !slices.Equal(got, []string{"houdini"}) {
		t.Errorf("rez_packages = %v, want [houdini]", got)
	}
	if result.Config.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("ColorScheme = %q, want light", result.Config.UI.ColorScheme)
	}
}

func TestGenerateCUEKeepsExtraSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := GenerateCUE(&Config{
		Extra: map[string]any{
			"rez_packages": []any{"maya-2024", "mtoa"},
			"studio":       "acme",
			"render":       map[string]any{"farm": "deadline", "priority": 50},
		},
		Launcher: DefaultConfig().Launcher,
		UI:       DefaultConfig().UI,
	})
	writeConfig(t, dir, content)

	result, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() of generated config error = %v\n%s", err, content)
	}
	extra := result.Config.Extra
	if got := toStringList(extra["rez_packages"]); !slices.Equal(got, []string{"maya-2024", "mtoa"}) {
		t.Errorf("rez_packages = %v, want [maya-2024 mtoa]", extra["rez_packages"])
	}
	if extra["studio"] != "acme" {
		t.Errorf("studio = %v, want acme\n%s", extra["studio"], content)
	}
	render, ok := extra["render"].(map[string]any)
	if !ok {
		t.Fatalf("render = %#v, want a map\n%s", extra["render"], content)
	}
	if render["farm"] != "deadline" {
		t.Errorf("render.farm = %v, want deadline", render["farm"])
	}
	if fmt.Sprint(render["priority"]) != "50" {
		t.Errorf("render.priority = %v, want 50", render["priority"])
	}
}

func TestGenerateCUEDefaultIsValid(t *testing.T) {
	t.Parallel()

	content := GenerateCUE(DefaultConfig())
	if _, err := decodeCUE([]byte(content), "config.cue"); err != nil {
		t.Errorf("generated default config does not validate: %v\n%s", err, content)
	}
	if !strings.Contains(content, "// extra: {") {
		t.Errorf("default config should show a commented extra example:\n%s", content)
	}
}

func TestDecodeCUESizeLimit(t *testing.T) {
	t.Parallel()

	big := make([]byte, maxConfigFileSize+1)
	if _, err := decodeCUE(big, "big.cue"); err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("decodeCUE() error = %v, want size error", err)
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Parallel()

	got, err := ConfigFilePath("/etc/rezlaunch")
	if err != nil {
		t.Fatalf("ConfigFilePath() error = %v", err)
	}
	if want := filepath.Join("/etc/rezlaunch", "config.cue"); got != want {
		t.Errorf("ConfigFilePath() = %q, want %q", got, want)
	}
}
