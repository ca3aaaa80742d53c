// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by tests across packages.
//
// Environment helpers (MustSetenv, SetHomeDir) return cleanup functions that
// restore the original state. NewFakeRez installs stand-in rez-env and
// rez-context scripts so probe, resolve and launch flows can be tested on
// machines without Rez.
package testutil
