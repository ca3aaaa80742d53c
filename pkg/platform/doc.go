// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It is the single place where the host operating system is detected. Launch
// command construction and the Rez probe both branch on HostOS values from this
// package instead of reading runtime.GOOS themselves, and host-process spawning
// consults the sandbox detection to escape a Flatpak sandbox when needed.
package platform
