// SPDX-License-Identifier: MPL-2.0

// Package packages resolves the Rez package list for an application launch.
//
// The list comes from the "rez_packages" key of the "extra" setting when it is
// configured, otherwise from the caller's default list. Resolution never fails:
// missing settings degrade to the default list and a missing default list
// degrades to an empty one.
package packages
