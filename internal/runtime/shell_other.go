// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import "os/exec"

func setRawCommandLine(*exec.Cmd, string) {}
