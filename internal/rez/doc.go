// SPDX-License-Identifier: MPL-2.0

// Package rez integrates the Rez package manager.
//
// Probe detects whether Rez is available as a package in the current
// environment by asking rez-env for the rez package root. Detection runs on
// every call; nothing is cached and no process state (PATH, environment,
// module search path) is modified. The root travels in the returned Handle.
//
// Resolve, ResolvedContext.ExecuteShell and ResolvedContext.PrintInfo drive
// the rez-env and rez-context tools to resolve a package list into a context
// file, run a command inside that context, and describe it. ContextConfig is
// the immutable configuration passed to the resolve call; it replaces setting
// Rez's global config before resolving.
package rez
