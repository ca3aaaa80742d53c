// SPDX-License-Identifier: MPL-2.0

// Package config handles rezlaunch configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/rezlaunch/config.cue (or $XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/rezlaunch/config.cue on macOS, %APPDATA%\rezlaunch\config.cue
// on Windows), falling back to ./config.cue. Files are validated against the embedded
// config_schema.cue before being merged over the defaults. Environment variables prefixed
// with REZLAUNCH_ override file values (e.g. REZLAUNCH_LAUNCHER_STRICT_PROBE=true).
//
// The extra block is exposed to the package list resolver through Config.Setting.
package config
