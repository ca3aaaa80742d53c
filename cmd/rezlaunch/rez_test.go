// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/invowk/rezlaunch/internal/config"
	"github.com/invowk/rezlaunch/internal/issue"
	"github.com/invowk/rezlaunch/internal/rez"
	"github.com/invowk/rezlaunch/internal/testutil"
)

func fakeRezConfig(fake *testutil.FakeRez, pkgs ...any) *config.Config {
	cfg := configWithPackages(pkgs...)
	cfg.Launcher.RezEnvPath = config.ToolPath(fake.RezEnv)
	cfg.Launcher.RezContextPath = config.ToolPath(fake.RezContext)
	return cfg
}

func TestLaunchCommandManaged(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeRez(t, testutil.FakeRezOptions{Root: "/opt/rez/packages/rez/3.0"})
	provider := stubConfigProvider{cfg: fakeRezConfig(fake, "maya-2024", "mtoa")}

	out, errOut, err := runCLI(t, provider, "--json", "launch", "-p", "ignored", "/bin/echo", "managed")
	if err != nil {
		t.Fatalf("launch error = %v\nstderr: %s", err, errOut)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != "managed" {
		t.Fatalf("stdout = %q, want application output then the result", out)
	}
	if lines[1] != `{"command":"/bin/echo managed &","return_code":0}` {
		t.Errorf("result = %q", lines[1])
	}
	if !strings.Contains(errOut, "packages: maya-2024 mtoa") {
		t.Errorf("stderr should carry the context info, got %q", errOut)
	}

	log := fake.Log(t)
	if !strings.Contains(log, "rez-env maya-2024 mtoa --output") {
		t.Errorf("configured packages should replace the flag defaults, log:\n%s", log)
	}
	if strings.Contains(log, "ignored") {
		t.Errorf("flag defaults should not reach rez-env, log:\n%s", log)
	}
	if !strings.Contains(log, "REZ_PARENT_VARIABLES=PYTHONPATH") {
		t.Errorf("parent variables not passed, log:\n%s", log)
	}
}

func TestLaunchCommandFallsBackWithoutRez(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeRez(t, testutil.FakeRezOptions{ProbeExitCode: 1})
	provider := stubConfigProvider{cfg: fakeRezConfig(fake, "maya-2024")}

	out, errOut, err := runCLI(t, provider, "launch", "/bin/echo", "direct")
	if err != nil {
		t.Fatalf("launch error = %v", err)
	}
	if strings.TrimSpace(out) != "direct" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "unable to request Rez packages") {
		t.Errorf("stderr should warn about the missing Rez, got %q", errOut)
	}
	for _, call := range fake.Invocations(t) {
		if strings.Contains(call, "--output") {
			t.Errorf("no context should be resolved without Rez, got %q", call)
		}
	}
}

func TestLaunchCommandStrictWithoutRez(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeRez(t, testutil.FakeRezOptions{ProbeExitCode: 1})
	provider := stubConfigProvider{cfg: fakeRezConfig(fake, "maya-2024")}

	out, _, err := runCLI(t, provider, "launch", "--strict", "/bin/echo", "never")
	if !errors.Is(err, rez.ErrPackageManagerNotFound) {
		t.Fatalf("launch --strict error = %v, want ErrPackageManagerNotFound", err)
	}
	if issue.IssueOf(err) == nil {
		t.Error("strict failure should link the package-manager issue")
	}
	if strings.Contains(out, "never") {
		t.Error("the application must not run after a strict probe failure")
	}
}

func TestLaunchCommandResolveFailure(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeRez(t, testutil.FakeRezOptions{Root: "/opt/rez"})
	provider := stubConfigProvider{cfg: fakeRezConfig(fake, "missing-plugin")}

	_, _, err := runCLI(t, provider, "launch", "/bin/echo", "never")
	if !errors.Is(err, rez.ErrContextResolve) {
		t.Fatalf("launch error = %v, want ErrContextResolve", err)
	}
	if id := issue.IssueOf(err); id == nil || id.Id() != issue.RezResolveFailedId {
		t.Errorf("IssueOf() = %v, want RezResolveFailedId", id)
	}
}

func TestProbeCommand(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		fake := testutil.NewFakeRez(t, testutil.FakeRezOptions{Root: "  /opt/rez/3.0  "})
		out, _, err := runCLI(t, stubConfigProvider{cfg: fakeRezConfig(fake)}, "probe")
		if err != nil {
			t.Fatalf("probe error = %v", err)
		}
		if out != "/opt/rez/3.0\n" {
			t.Errorf("stdout = %q", out)
		}

		out, _, err = runCLI(t, stubConfigProvider{cfg: fakeRezConfig(fake)}, "probe", "--json")
		if err != nil {
			t.Fatalf("probe --json error = %v", err)
		}
		if strings.TrimSpace(out) != `{"found":true,"root":"/opt/rez/3.0"}` {
			t.Errorf("stdout = %q", out)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		fake := testutil.NewFakeRez(t, testutil.FakeRezOptions{ProbeExitCode: 1})
		_, errOut, err := runCLI(t, stubConfigProvider{cfg: fakeRezConfig(fake)}, "probe")

		var exitErr *ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != 1 || exitErr.Err != nil {
			t.Fatalf("probe error = %v, want a silent exit 1", err)
		}
		if !strings.Contains(errOut, "Rez not found") {
			t.Errorf("stderr = %q", errOut)
		}
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()

		fake := testutil.NewFakeRez(t, testutil.FakeRezOptions{ProbeExitCode: 1})
		_, _, err := runCLI(t, stubConfigProvider{cfg: fakeRezConfig(fake)}, "probe", "--strict")
		if !errors.Is(err, rez.ErrPackageManagerNotFound) {
			t.Errorf("probe --strict error = %v, want ErrPackageManagerNotFound", err)
		}
	})
}
