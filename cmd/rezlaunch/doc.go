// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the rezlaunch command tree.
//
// rezlaunch hosts the two launch hooks: "packages" resolves the Rez package
// list for a launch and "launch" starts an application, inside a resolved Rez
// context when packages are requested and Rez is available.
package cmd
