// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"
	"strings"

	"github.com/invowk/rezlaunch/internal/runtime"
	"github.com/invowk/rezlaunch/pkg/platform"
)

// CommandKind values select how a command string is rendered.
const (
	// KindPOSIX backgrounds the executable in a POSIX shell.
	KindPOSIX CommandKind = "posix"
	// KindMacOSBundle opens an application bundle with open(1).
	KindMacOSBundle CommandKind = "macos-bundle"
	// KindMacOSExecutable runs a plain macOS executable like KindPOSIX.
	KindMacOSExecutable CommandKind = "macos-executable"
	// KindWindows detaches the executable with cmd's start builtin.
	KindWindows CommandKind = "windows"

	appBundleSuffix = ".app"
	homePrefix      = "~/"
	// windowsWindowTitle is the window title argument start requires before a quoted path.
	windowsWindowTitle = "App"
)

type (
	// CommandKind is the platform variant of a CommandSpec.
	CommandKind string

	// CommandSpec is a launch command for one platform.
	CommandSpec struct {
		Kind       CommandKind
		Executable string
		// Arguments is inserted verbatim.
		Arguments string
		// Shell is the shell family that interprets String().
		Shell runtime.ShellType
	}
)

// NewCommandSpec builds the CommandSpec that launches path with args on hostOS.
func NewCommandSpec(hostOS platform.HostOS, path, args string) CommandSpec {
	spec := CommandSpec{
		Executable: path,
		Arguments:  args,
		Shell:      runtime.ShellTypeFor(hostOS),
	}
	switch {
	case hostOS.IsWindows():
		spec.Kind = KindWindows
	case hostOS.IsDarwin() && strings.HasSuffix(path, appBundleSuffix):
		spec.Kind = KindMacOSBundle
	case hostOS.IsDarwin():
		spec.Kind = KindMacOSExecutable
	default:
		spec.Kind = KindPOSIX
	}
	return spec
}

// String renders the command string handed to the shell.
func (c CommandSpec) String() string {
	switch c.Kind {
	case KindMacOSBundle:
		cmd := "open -n -a " + runtime.DoubleQuote(platform.Darwin, c.Executable)
		if c.Arguments != "" {
			cmd += " --args " + c.Arguments
		}
		return cmd
	case KindWindows:
		return joinWords("start", "/B", `"`+windowsWindowTitle+`"`, runtime.DoubleQuote(platform.Windows, c.Executable), c.Arguments)
	default:
		return joinWords(quoteExecutable(c.Executable), c.Arguments, "&")
	}
}

// GoString implements fmt.GoStringer for readable test failures.
func (c CommandSpec) GoString() string {
	return fmt.Sprintf("CommandSpec{%s %q shell=%s}", c.Kind, c.String(), c.Shell)
}

// quoteExecutable quotes a POSIX executable path. A leading "~" or "~/"
// stays unquoted so the shell still expands it to the home directory.
func quoteExecutable(path string) string {
	if path == homePrefix[:1] {
		return path
	}
	if rest, ok := strings.CutPrefix(path, homePrefix); ok {
		return homePrefix + runtime.QuoteWord(platform.Linux, rest)
	}
	return runtime.QuoteWord(platform.Linux, path)
}

// joinWords joins the non-empty words with single spaces.
func joinWords(words ...string) string {
	nonEmpty := words[:0:0]
	for _, w := range words {
		if w != "" {
			nonEmpty = append(nonEmpty, w)
		}
	}
	return strings.Join(nonEmpty, " ")
}
