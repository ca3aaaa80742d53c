// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		PackageManagerNotFoundId,
		RezResolveFailedId,
		ConfigLoadFailedId,
		ShellNotFoundId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if PackageManagerNotFoundId != 1 {
		t.Errorf("PackageManagerNotFoundId = %d, want 1", PackageManagerNotFoundId)
	}
}

func TestValues_SortedById(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not sorted: %d before %d", values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	t.Parallel()

	msg := Get(PackageManagerNotFoundId).MarkdownMsg()
	if !strings.Contains(string(msg), "rez-bind rez") {
		t.Errorf("MarkdownMsg() should suggest rez-bind, got:\n%s", msg)
	}
}

func TestIssue_ExtLinksIsCopy(t *testing.T) {
	t.Parallel()

	i := Get(RezResolveFailedId)
	links := i.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ExtLinks() is empty")
	}
	links[0] = "modified"
	if i.ExtLinks()[0] == "modified" {
		t.Error("ExtLinks() should return a copy")
	}
	if len(i.DocLinks()) != 0 {
		t.Errorf("DocLinks() = %v, want none", i.DocLinks())
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(PackageManagerNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"Rez was not found", "rez-bind rez", "See also", "rez.readthedocs.io"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}

	out, err = Get(ShellNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(out, "See also") {
		t.Errorf("Render() of an issue without links should not add a See also section:\n%s", out)
	}
}
