// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"

	"github.com/invowk/rezlaunch/internal/issue"
	"github.com/invowk/rezlaunch/internal/rez"
)

// describeRezError wraps Rez failures with user guidance. Other errors are
// returned unchanged.
func describeRezError(err error, operation, resource string) error {
	var notFound *rez.PackageManagerNotFoundError
	if errors.As(err, &notFound) {
		// A Cause means the query shell itself could not be started.
		issueID := issue.PackageManagerNotFoundId
		if notFound.Cause != nil {
			issueID = issue.ShellNotFoundId
		}
		return issue.NewErrorContext().
			WithOperation(operation).
			WithResource(resource).
			WithSuggestion(notFound.Suggestion()).
			WithSuggestion("Set launcher.strict_probe to false to launch without Rez").
			WithIssue(issueID).
			Wrap(err).
			BuildError()
	}

	var resolveErr *rez.ResolveError
	if errors.As(err, &resolveErr) {
		return issue.NewErrorContext().
			WithOperation("resolve rez context").
			WithResource(strings.Join(resolveErr.Packages, " ")).
			WithSuggestion("Check extra.rez_packages and --package values for typos").
			WithIssue(issue.RezResolveFailedId).
			Wrap(err).
			BuildError()
	}

	return err
}
