// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/rezlaunch/cmd/rezlaunch"

func main() {
	cmd.Execute()
}
