package ui

import (
	"fmt"
	"sort"
	"strings"
)

// Written is an artifact that was rewritten
type Written struct {
	Path   string `json:"path"`
	Backup string `json:"backup,omitempty"`
}

// Report is what a reconcile command did or would do
type Report struct {
	Command string    `json:"command"`
	DryRun  bool      `json:"dry_run"`
	Target  string    `json:"target"`
	Changes []string  `json:"changes"`
	Summary string    `json:"summary"`
	Written []Written `json:"written,omitempty"`

	// Pruned lists backups removed by retention
	Pruned   []string `json:"pruned_backups,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	// Notes are informational lines printed after the changes
	Notes []string `json:"notes,omitempty"`
}

// LibraryStatus is one configured library
type LibraryStatus struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	URI         string `json:"uri"`
	Description string `json:"description,omitempty"`
	Pinned      bool   `json:"pinned"`
}

// PathVariable is one KiCad path variable
type PathVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Status describes a KiCad profile
type Status struct {
	Profile   string          `json:"profile"`
	Version   string          `json:"version,omitempty"`
	Strategy  string          `json:"found_by"`
	Libraries []LibraryStatus `json:"libraries"`
	Variables []PathVariable  `json:"path_variables"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// Markdown renders the status as a markdown document
func (s *Status) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# KiCad profile\n\n")
	fmt.Fprintf(&sb, "- **Location:** `%s`\n", s.Profile)
	if s.Version != "" {
		fmt.Fprintf(&sb, "- **Version:** %s\n", s.Version)
	}
	fmt.Fprintf(&sb, "- **Found by:** %s\n\n", s.Strategy)

	byKind := map[string][]LibraryStatus{}
	var kinds []string
	for _, lib := range s.Libraries {
		if _, ok := byKind[lib.Kind]; !ok {
			kinds = append(kinds, lib.Kind)
		}
		byKind[lib.Kind] = append(byKind[lib.Kind], lib)
	}

	for _, kind := range kinds {
		libs := byKind[kind]
		fmt.Fprintf(&sb, "## %s libraries (%d)\n\n", capitalize(kind), len(libs))
		sb.WriteString("| Name | Pinned | URI |\n|---|---|---|\n")
		for _, lib := range libs {
			pinned := ""
			if lib.Pinned {
				pinned = "yes"
			}
			fmt.Fprintf(&sb, "| %s | %s | `%s` |\n", escapeCell(lib.Name), pinned, lib.URI)
		}
		sb.WriteString("\n")
	}
	if len(kinds) == 0 {
		sb.WriteString("No libraries are configured.\n\n")
	}

	if len(s.Variables) > 0 {
		vars := append([]PathVariable(nil), s.Variables...)
		sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
		sb.WriteString("## Path variables\n\n")
		for _, v := range vars {
			fmt.Fprintf(&sb, "- `%s` = `%s`\n", v.Name, v.Value)
		}
		sb.WriteString("\n")
	}

	if len(s.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
