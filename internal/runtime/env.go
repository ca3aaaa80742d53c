// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"slices"
	"strings"
)

// CopyEnviron returns a copy of the current process environment as
// "KEY=VALUE" strings. Mutating the copy does not affect the process.
func CopyEnviron() []string {
	return slices.Clone(os.Environ())
}

// SetEnv returns environ with name set to value. An existing entry for name
// is replaced in place; otherwise the entry is appended. environ itself is
// not modified.
func SetEnv(environ []string, name, value string) []string {
	result := make([]string, 0, len(environ)+1)
	replaced := false
	for _, e := range environ {
		if envName(e) == name {
			if !replaced {
				result = append(result, name+"="+value)
				replaced = true
			}
			continue
		}
		result = append(result, e)
	}
	if !replaced {
		result = append(result, name+"="+value)
	}
	return result
}

// envName returns the variable name of a "KEY=VALUE" entry.
// Malformed entries without a separator are returned whole.
func envName(e string) string {
	k, _, _ := strings.Cut(e, "=")
	return k
}
