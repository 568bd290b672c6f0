// Package update pulls a library collection and reports the libraries the
// pull brought in. It does not touch the KiCad profile; kilm setup does
// that.
package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/kilm/pkg/desired"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/paths"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/arthur-debert/kilm/pkg/vcs"
)

// MsgRunSetup follows a pull that added libraries
const MsgRunSetup = "run 'kilm setup %s' to add the new libraries to KiCad"

// UpdateOptions holds options for the update command
type UpdateOptions struct {
	FS         types.FS
	Git        vcs.Runner
	LibraryDir string
	DryRun     bool
}

// Update runs git pull --ff-only in the collection
func Update(ctx context.Context, opts UpdateOptions) (*ui.Report, error) {
	logger := logging.GetLogger("commands.update")

	dir, err := paths.Normalize(opts.LibraryDir)
	if err != nil {
		return nil, err
	}
	top, err := vcs.TopLevel(ctx, opts.Git, dir)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("dir", dir).Str("repository", top).Msg("Executing command")

	report := &ui.Report{Command: "update", DryRun: opts.DryRun, Target: top}
	if opts.DryRun {
		report.Notes = append(report.Notes, "would run git pull --ff-only in "+top)
		return report, nil
	}

	beforeSym, beforeFP, _ := desired.ListLibraries(opts.FS, dir)

	out, err := vcs.Pull(ctx, opts.Git, top)
	if err != nil {
		return report, err
	}
	if out != "" {
		for _, line := range strings.Split(out, "\n") {
			report.Notes = append(report.Notes, "git: "+line)
		}
	}

	afterSym, afterFP, err := desired.ListLibraries(opts.FS, dir)
	if err != nil {
		return report, err
	}
	for _, name := range added(beforeSym, afterSym) {
		report.Changes = append(report.Changes, fmt.Sprintf("+ new %s %s", types.KindSymbol.Label(), name))
	}
	for _, name := range added(beforeFP, afterFP) {
		report.Changes = append(report.Changes, fmt.Sprintf("+ new %s %s", types.KindFootprint.Label(), name))
	}

	if len(report.Changes) > 0 {
		report.Summary = fmt.Sprintf("%d new libraries", len(report.Changes))
		if len(report.Changes) == 1 {
			report.Summary = "1 new library"
		}
		report.Notes = append(report.Notes, fmt.Sprintf(MsgRunSetup, dir))
	}
	logger.Info().Int("new_libraries", len(report.Changes)).Msg("Update complete")
	return report, nil
}

// added returns the names in after that are not in before
func added(before, after []string) []string {
	seen := make(map[string]bool, len(before))
	for _, n := range before {
		seen[n] = true
	}
	var out []string
	for _, n := range after {
		if !seen[n] {
			out = append(out, n)
		}
	}
	return out
}
