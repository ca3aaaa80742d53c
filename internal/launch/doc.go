// SPDX-License-Identifier: MPL-2.0

// Package launch starts external applications for the host pipeline.
//
// A LaunchRequest is turned into a CommandSpec, a per-OS command string and
// the shell family that interprets it. The Launcher then picks one
// EnvironmentProvider per launch: ManagedProvider runs the command inside a
// Rez context resolved from the requested packages, NullProvider runs it
// directly through the host shell. ManagedProvider is only chosen when the
// package list is non-empty and Rez is found.
package launch
