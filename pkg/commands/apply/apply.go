package apply

import (
	"context"

	"github.com/arthur-debert/kilm/pkg/commands/addhook"
	"github.com/arthur-debert/kilm/pkg/commands/internal"
	"github.com/arthur-debert/kilm/pkg/desired"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/arthur-debert/kilm/pkg/vcs"
)

// ApplyOptions holds options for the apply command
type ApplyOptions struct {
	internal.ProfileOptions

	// File is the YAML declaration to reconcile
	File string

	// The remaining fields are used only when the declaration has a hook
	Git         vcs.Runner
	RepoDir     string
	HookName    string
	Interpreter string
}

// Apply reconciles the KiCad profile, and the hook when the declaration
// has one, against a declaration file
func Apply(ctx context.Context, opts ApplyOptions) ([]*ui.Report, error) {
	logger := logging.GetLogger("commands.apply")
	logger.Debug().Str("file", opts.File).Msg("Executing command")

	if opts.File == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no declaration file given")
	}
	state, err := desired.LoadDeclaration(opts.FS, opts.File)
	if err != nil {
		return nil, err
	}

	var reports []*ui.Report
	libraries := state
	libraries.HookBlockText = nil
	if !libraries.IsZero() {
		report, err := internal.ReconcileProfile("apply", opts.ProfileOptions, libraries)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			return reports, err
		}
	}

	if state.HookBlockText != nil {
		report, err := addhook.AddHook(ctx, addhook.AddHookOptions{
			FS:          opts.FS,
			DryRun:      opts.DryRun,
			MaxBackups:  opts.MaxBackups,
			Now:         opts.Now,
			Git:         opts.Git,
			RepoDir:     opts.RepoDir,
			HookName:    opts.HookName,
			Interpreter: opts.Interpreter,
			Block:       *state.HookBlockText,
		})
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			return reports, err
		}
	}

	if len(reports) == 0 {
		logger.Warn().Str("file", opts.File).Msg("Declaration asks for nothing")
	}
	return reports, nil
}
