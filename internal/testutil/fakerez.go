// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

type (
	// FakeRezOptions controls how the fake Rez tools behave.
	FakeRezOptions struct {
		// Root is printed by the availability query. Empty prints nothing.
		Root string
		// ProbeExitCode is the exit status of the availability query.
		ProbeExitCode int
	}

	// FakeRez holds the paths of an installed fake Rez toolchain.
	//
	// The fake rez-env understands the invocations rezlaunch makes:
	//   - rez-env rez -- printenv REZ_REZ_ROOT   (availability query)
	//   - rez-env PKG... --output FILE          (resolve; packages named missing* fail)
	//   - rez-env --input FILE --shell S --command CMD [--stdin]
	//
	// Every invocation and its REZ_PARENT_VARIABLES value is appended to LogPath.
	FakeRez struct {
		Dir        string
		RezEnv     string
		RezContext string
		LogPath    string
	}
)

// NewFakeRez writes fake rez-env and rez-context scripts into a temp dir.
// The scripts are POSIX sh; tests using them are skipped on Windows.
func NewFakeRez(t testing.TB, opts FakeRezOptions) *FakeRez {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake Rez tools are POSIX shell scripts")
	}

	dir := t.TempDir()
	fake := &FakeRez{
		Dir:        dir,
		RezEnv:     filepath.Join(dir, "rez-env"),
		RezContext: filepath.Join(dir, "rez-context"),
		LogPath:    filepath.Join(dir, "rez.log"),
	}

	MustWriteFile(t, fake.RezEnv, []byte(fmt.Sprintf(fakeRezEnvScript, fake.LogPath, opts.Root, opts.ProbeExitCode)), 0o755)
	MustWriteFile(t, fake.RezContext, []byte(fmt.Sprintf(fakeRezContextScript, fake.LogPath)), 0o755)
	return fake
}

// Log returns the invocation log, or "" when nothing ran.
func (f *FakeRez) Log(t testing.TB) string {
	t.Helper()
	data, err := os.ReadFile(f.LogPath)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("failed to read fake rez log: %v", err)
	}
	return string(data)
}

// Invocations returns the logged command lines, one per call.
func (f *FakeRez) Invocations(t testing.TB) []string {
	t.Helper()
	var calls []string
	for _, line := range strings.Split(f.Log(t), "\n") {
		if strings.HasPrefix(line, "rez-env ") || strings.HasPrefix(line, "rez-context ") {
			calls = append(calls, line)
		}
	}
	return calls
}

const fakeRezEnvScript = `#!/bin/sh
LOG='%s'
ROOT='%s'
echo "rez-env $*" >> "$LOG"
echo "REZ_PARENT_VARIABLES=${REZ_PARENT_VARIABLES}" >> "$LOG"

if [ "$1" = "rez" ]; then
  if [ -n "$ROOT" ]; then
    echo "$ROOT"
  fi
  exit %d
fi

input=""; output=""; command=""; pkgs=""
while [ $# -gt 0 ]; do
  case "$1" in
    --input) input="$2"; shift 2 ;;
    --output) output="$2"; shift 2 ;;
    --shell) shift 2 ;;
    --command) command="$2"; shift 2 ;;
    --stdin) shift ;;
    *) pkgs="$pkgs $1"; shift ;;
  esac
done

if [ -n "$output" ]; then
  for p in $pkgs; do
    case "$p" in
      missing*) echo "package not found: $p" >&2; exit 1 ;;
    esac
  done
  echo "packages:$pkgs" > "$output"
  exit 0
fi

if [ -n "$input" ]; then
  if [ ! -f "$input" ]; then
    echo "context file not found: $input" >&2
    exit 1
  fi
  exec /bin/sh -c "$command"
fi

echo "unsupported invocation" >&2
exit 2
`

const fakeRezContextScript = `#!/bin/sh
LOG='%s'
echo "rez-context $*" >> "$LOG"
for arg; do file="$arg"; done
echo "resolved context"
cat "$file"
`

// InstallFakeFlatpakSpawn puts a flatpak-spawn stand-in first on PATH and
// returns the path of its invocation log. Like the real tool it does not
// forward its own environment: the host command runs with only the
// variables passed as --env=KEY=VALUE. The test must not be parallel.
func InstallFakeFlatpakSpawn(t testing.TB) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("flatpak-spawn is Linux-only")
	}

	dir := t.TempDir()
	logPath := filepath.Join(dir, "flatpak-spawn.log")
	MustWriteFile(t, filepath.Join(dir, "flatpak-spawn"), []byte(fmt.Sprintf(fakeFlatpakSpawnScript, logPath)), 0o755)
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return logPath
}

const fakeFlatpakSpawnScript = `#!/bin/sh
echo "flatpak-spawn $1" >> '%s'
[ "$1" = "--host" ] || exit 97
shift
count=$#
i=0
while [ "$i" -lt "$count" ]; do
  arg=$1
  shift
  case "$arg" in
    --env=*) arg=${arg#--env=} ;;
  esac
  set -- "$@" "$arg"
  i=$((i + 1))
done
exec env -i "$@"
`
