// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"strings"
	"sync"
)

// Sandbox type constants.
const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
//
// INVARIANT: detectSandboxFrom MUST NOT panic. sync.OnceValue propagates a
// panic on every call, which would turn one bad lookup into a persistent crash.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the type of application sandbox the current process is running in.
// The result is cached after the first call.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// SpawnPrefixFor returns the argv prefix that runs a program on the host
// system from inside the given sandbox, or nil when no prefix is needed.
//
// Launched applications must run on the host: a DCC started inside the
// launcher's Flatpak sandbox would not see the studio's software mounts.
func SpawnPrefixFor(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"flatpak-spawn", "--host"}
	default:
		return nil
	}
}

// SpawnEnvArgs returns the flags that hand env ("KEY=VALUE" entries) to a
// program started with SpawnPrefixFor(st). flatpak-spawn does not forward
// its own environment to the host, so each entry becomes --env=KEY=VALUE.
// Entries without a name are dropped.
func SpawnEnvArgs(st SandboxType, env []string) []string {
	if st != SandboxFlatpak {
		return nil
	}
	args := make([]string, 0, len(env))
	for _, kv := range env {
		if name, _, ok := strings.Cut(kv, "="); ok && name != "" {
			args = append(args, "--env="+kv)
		}
	}
	return args
}

// detectSandboxFrom performs sandbox detection using the provided lookup function.
// The /.flatpak-info file is always present inside Flatpak sandboxes.
func detectSandboxFrom(statFile func(string) error) SandboxType {
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
