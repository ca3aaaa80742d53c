// SPDX-License-Identifier: MPL-2.0

// Package runtime runs shell command strings on the host.
//
// HostShell is the generic "run and block" primitive used by the launcher when
// no package manager is involved, and by the Rez probe to query the package
// manager's install root. Command strings are handed to the host shell as-is:
// POSIX systems use sh -c, Windows uses cmd /C.
//
// Exit statuses are reported as ExitCode values inside a Result. A process that
// ran and exited non-zero is not an error; only failures to start the shell set
// Result.Error.
package runtime
