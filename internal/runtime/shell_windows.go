// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import (
	"os/exec"
	"syscall"
)

// setRawCommandLine passes script to cmd.exe verbatim. The default argv
// escaping quotes the script as a single argument, which cmd /C does not undo.
func setRawCommandLine(cmd *exec.Cmd, script string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: `cmd /S /C "` + script + `"`,
	}
}
