// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"strings"

	"github.com/invowk/rezlaunch/pkg/platform"

	"mvdan.cc/sh/v3/syntax"
)

// QuoteWord quotes s for use as a single word in a command string for
// hostOS's shell. Words without shell metacharacters are returned unchanged,
// so "/usr/bin/maya" stays as is while "/opt/My App/bin/app" is quoted.
func QuoteWord(hostOS platform.HostOS, s string) string {
	if hostOS.IsWindows() {
		if s != "" && !strings.ContainsAny(s, " \t&|<>^()\"%") {
			return s
		}
		return DoubleQuote(hostOS, s)
	}

	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Non-printable bytes cannot be quoted portably; double quotes keep the word intact.
		return DoubleQuote(hostOS, s)
	}
	return quoted
}

// DoubleQuote wraps s in double quotes for hostOS's shell.
// POSIX shells get the characters that stay special inside double quotes
// escaped. cmd.exe has no escape inside quotes, so embedded quotes are doubled.
func DoubleQuote(hostOS platform.HostOS, s string) string {
	if hostOS.IsWindows() {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '$', '`':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
