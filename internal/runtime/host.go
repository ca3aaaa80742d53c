// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"os/exec"
	"time"

	"github.com/invowk/rezlaunch/pkg/platform"
)

// DefaultWaitDelay bounds how long Wait keeps copying output after the
// spawned process exits. Applications started in the background inherit the
// output pipes; without a bound Wait would last as long as the application.
const DefaultWaitDelay = 2 * time.Second

// HostCommand builds the exec.Cmd that runs name with args on the host.
//
// env is the child environment (nil inherits the current process). When
// sandbox needs a spawn helper, env is also passed to it as flags so it
// reaches the host process.
func HostCommand(ctx context.Context, sandbox platform.SandboxType, env []string, name string, args ...string) *exec.Cmd {
	argv := platform.SpawnPrefixFor(sandbox)
	argv = append(argv, platform.SpawnEnvArgs(sandbox, env)...)
	argv = append(argv, name)
	argv = append(argv, args...)

	// #nosec G204 -- running configured commands is the purpose of the launcher
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = env
	cmd.WaitDelay = DefaultWaitDelay
	return cmd
}
