// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/rezlaunch/internal/runtime"
	"github.com/invowk/rezlaunch/internal/testutil"
	"github.com/invowk/rezlaunch/pkg/platform"
)

func TestNewCommandSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		os        platform.HostOS
		path      string
		args      string
		wantKind  CommandKind
		wantCmd   string
		wantShell runtime.ShellType
	}{
		{"linux", platform.Linux, "/bin/foo", "-x", KindPOSIX, "/bin/foo -x &", runtime.ShellBash},
		{"linux no args", platform.Linux, "/bin/foo", "", KindPOSIX, "/bin/foo &", runtime.ShellBash},
		{"linux path with space", platform.Linux, "/opt/My App/bin/app", "-v", KindPOSIX, "'/opt/My App/bin/app' -v &", runtime.ShellBash},
		{"linux home path", platform.Linux, "~/apps/foo", "-x", KindPOSIX, "~/apps/foo -x &", runtime.ShellBash},
		{"linux home path with space", platform.Linux, "~/My Apps/foo", "", KindPOSIX, "~/'My Apps/foo' &", runtime.ShellBash},
		{"darwin home executable", platform.Darwin, "~/bin/nuke", "", KindMacOSExecutable, "~/bin/nuke &", runtime.ShellBash},
		{"freebsd", platform.HostOS("freebsd"), "/usr/local/bin/foo", "-x", KindPOSIX, "/usr/local/bin/foo -x &", runtime.ShellBash},
		{"darwin bundle", platform.Darwin, "/Apps/Foo.app", "", KindMacOSBundle, `open -n -a "/Apps/Foo.app"`, runtime.ShellBash},
		{"darwin bundle with args", platform.Darwin, "/Apps/Foo.app", "--flag", KindMacOSBundle, `open -n -a "/Apps/Foo.app" --args --flag`, runtime.ShellBash},
		{"darwin bundle with quote", platform.Darwin, `/Apps/Say "Hi".app`, "", KindMacOSBundle, `open -n -a "/Apps/Say \"Hi\".app"`, runtime.ShellBash},
		{"darwin executable", platform.Darwin, "/usr/local/bin/foo", "-x", KindMacOSExecutable, "/usr/local/bin/foo -x &", runtime.ShellBash},
		{"windows", platform.Windows, `C:\foo.exe`, "-x", KindWindows, `start /B "App" "C:\foo.exe" -x`, runtime.ShellCmd},
		{"windows no args", platform.Windows, `C:\Program Files\Foo\foo.exe`, "", KindWindows, `start /B "App" "C:\Program Files\Foo\foo.exe"`, runtime.ShellCmd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec := NewCommandSpec(tt.os, tt.path, tt.args)
			if spec.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", spec.Kind, tt.wantKind)
			}
			if got := spec.String(); got != tt.wantCmd {
				t.Errorf("String() = %q, want %q", got, tt.wantCmd)
			}
			if spec.Shell != tt.wantShell {
				t.Errorf("Shell = %q, want %q", spec.Shell, tt.wantShell)
			}
			if spec.Executable != tt.path || spec.Arguments != tt.args {
				t.Errorf("spec = %#v, want executable %q and arguments %q", spec, tt.path, tt.args)
			}
		})
	}
}

func TestPOSIXCommandExpandsHome(t *testing.T) {
	t.Parallel()
	if platform.Current().IsWindows() {
		t.Skip("requires a POSIX shell")
	}

	home := t.TempDir()
	toolDir := filepath.Join(home, "my tools")
	if err := os.MkdirAll(toolDir, 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.MustWriteFile(t, filepath.Join(toolDir, "hello"), []byte("#!/bin/sh\necho \"hello $1\"\n"), 0o755)

	var out bytes.Buffer
	shell := &runtime.HostShell{
		OS:     platform.Current(),
		Env:    runtime.SetEnv(os.Environ(), "HOME", home),
		Stdout: &out,
		Stderr: &out,
	}

	spec := NewCommandSpec(platform.Current(), "~/my tools/hello", "world")
	result := shell.Run(context.Background(), spec.String())
	if !result.Success() {
		t.Fatalf("Run(%q) = %+v, want success", spec.String(), result)
	}
	if got := strings.TrimSpace(out.String()); got != "hello world" {
		t.Errorf("output = %q, want %q", got, "hello world")
	}
}
