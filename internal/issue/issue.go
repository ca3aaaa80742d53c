// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Issue identifiers.
const (
	PackageManagerNotFoundId Id = iota + 1
	RezResolveFailedId
	ConfigLoadFailedId
	ShellNotFoundId
)

type (
	// Id identifies a catalog issue.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a known failure with Markdown guidance for the user.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

var (
	render = glamour.Render

	packageManagerNotFoundIssue = &Issue{
		id: PackageManagerNotFoundId,
		mdMsg: `
# Rez was not found!

Packages were requested for this launch, but Rez is not available as a package
in the current environment.

## Things you can try:
- Bind Rez as a package:
~~~
$ rez-bind rez
~~~
- Check that rez-env is on your PATH, or set its location:
~~~cue
launcher: rez_env_path: "/opt/rez/bin/rez/rez-env"
~~~
- Set launcher.strict_probe to false to launch without Rez when it is missing`,
		extLinks: []HttpLink{"https://rez.readthedocs.io/en/stable/installation.html"},
	}

	rezResolveFailedIssue = &Issue{
		id: RezResolveFailedId,
		mdMsg: `
# Rez failed to resolve the requested packages!

## Things you can try:
- Resolve the same request yourself to see the full solver output:
~~~
$ rez-env <packages...>
~~~
- Check the extra.rez_packages list in your config for typos or missing versions
- Make sure the packages are released to a path in REZ_PACKAGES_PATH`,
		extLinks: []HttpLink{"https://rez.readthedocs.io/en/stable/context.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

## Things you can try:
- Check the file for CUE syntax errors
- Compare it with the defaults:
~~~
$ rezlaunch config dump
~~~
- Create a fresh config file:
~~~
$ rezlaunch config init
~~~`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Failed to start the shell!

Applications are launched through /bin/sh on Linux and macOS and cmd.exe on Windows.

## Things you can try:
- Check that the shell exists and is executable
- When running inside Flatpak, check that flatpak-spawn is available`,
	}

	issues = map[Id]*Issue{
		packageManagerNotFoundIssue.Id(): packageManagerNotFoundIssue,
		rezResolveFailedIssue.Id():       rezResolveFailedIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		shellNotFoundIssue.Id():          shellNotFoundIssue,
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns links to rezlaunch documentation.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// ExtLinks returns links to external documentation.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as styled terminal output. stylePath is a glamour
// style name ("dark", "light", "notty") or a path to a style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if links := append(i.DocLinks(), i.extLinks...); len(links) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range links {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns all catalog issues ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Get returns the issue with id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
