// Package diff renders a ChangeSet as the lines kilm prints before
// applying it. Dry runs and real runs print the same lines.
//
// Managed block changes are followed by a unified diff of the block,
// produced with github.com/pmezard/go-difflib.
package diff

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/kilm/pkg/types"
	difflib "github.com/pmezard/go-difflib/difflib"
)

// Line markers
const (
	Added   = "+"
	Removed = "-"
	Changed = "~"
)

// blockIndent prefixes unified diff lines under a managed block change
const blockIndent = "    "

// Render returns one line per change, in a stable order: additions, uri
// updates, removals, pin changes, path variables, then the managed block
func Render(cs *types.ChangeSet) []string {
	if cs.IsEmpty() {
		return nil
	}
	var lines []string

	for _, a := range cs.Additions {
		line := fmt.Sprintf("%s add %s %s (%s)", Added, a.Kind.Label(), a.Name, a.URI)
		if a.Pinned {
			line += " [pinned]"
		}
		lines = append(lines, line)
	}
	for _, u := range cs.URIUpdates {
		lines = append(lines, fmt.Sprintf("%s update %s %s uri: %s -> %s", Changed, u.Kind.Label(), u.Name, u.From, u.To))
	}
	for _, r := range cs.Removals {
		lines = append(lines, fmt.Sprintf("%s remove %s %s", Removed, r.Kind.Label(), r.Name))
	}
	for _, p := range cs.PinChanges {
		verb := "unpin"
		if p.Pinned {
			verb = "pin"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s", Changed, verb, p.Kind.Label(), p.Name))
	}
	for _, e := range cs.EnvChanges {
		from := "(unset)"
		if e.Existed {
			from = e.From
		}
		lines = append(lines, fmt.Sprintf("%s set path variable %s: %s -> %s", Changed, e.Name, from, e.To))
	}

	if cs.ManagedBlockReplacement != nil {
		if cs.PreviousManagedBlock == nil {
			lines = append(lines, Added+" add managed block")
		} else {
			lines = append(lines, Changed+" update managed block")
		}
		for _, l := range blockDiff(cs.PreviousManagedBlock, *cs.ManagedBlockReplacement) {
			lines = append(lines, blockIndent+l)
		}
	}

	return lines
}

// blockDiff returns the unified diff lines between two block bodies
func blockDiff(previous *string, next string) []string {
	var a []string
	if previous != nil {
		a = splitLines(*previous)
	}
	u := difflib.UnifiedDiff{
		A:        a,
		B:        splitLines(next),
		FromFile: "managed block (current)",
		ToFile:   "managed block (new)",
		Context:  3,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// splitLines splits s keeping newlines, without a trailing empty element
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Summary counts the changes, for example "1 addition, 2 pin changes"
func Summary(cs *types.ChangeSet) string {
	if cs.IsEmpty() {
		return "no changes"
	}
	var parts []string
	count := func(n int, singular, plural string) {
		switch {
		case n == 1:
			parts = append(parts, "1 "+singular)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, plural))
		}
	}
	count(len(cs.Additions), "addition", "additions")
	count(len(cs.URIUpdates), "uri update", "uri updates")
	count(len(cs.Removals), "removal", "removals")
	count(len(cs.PinChanges), "pin change", "pin changes")
	count(len(cs.EnvChanges), "path variable", "path variables")
	if cs.ManagedBlockReplacement != nil {
		parts = append(parts, "managed block")
	}
	return strings.Join(parts, ", ")
}
