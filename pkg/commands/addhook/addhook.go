package addhook

import (
	"context"
	"time"

	"github.com/arthur-debert/kilm/pkg/backup"
	"github.com/arthur-debert/kilm/pkg/commands/internal"
	"github.com/arthur-debert/kilm/pkg/diff"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/hookdoc"
	"github.com/arthur-debert/kilm/pkg/locator"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/reconcile"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/arthur-debert/kilm/pkg/vcs"
	"github.com/arthur-debert/kilm/pkg/writer"
)

// AddHookOptions holds options for the add-hook command
type AddHookOptions struct {
	FS         types.FS
	DryRun     bool
	MaxBackups int
	Now        func() time.Time

	// Git resolves core.hooksPath; nil skips it
	Git     vcs.Runner
	RepoDir string
	// HookName defaults to post-merge
	HookName    string
	Interpreter string
	// Block is the managed block body
	Block string
}

// AddHook ensures the managed block in a repository hook
func AddHook(ctx context.Context, opts AddHookOptions) (*ui.Report, error) {
	logger := logging.GetLogger("commands.addhook")
	logger.Debug().Str("repo", opts.RepoDir).Str("hook", opts.HookName).Msg("Executing command")

	if hookdoc.NormalizeBlock(opts.Block) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "the managed block is empty")
	}

	repo, err := locator.FindRepository(ctx, opts.FS, opts.Git, opts.RepoDir)
	if err != nil {
		return nil, err
	}
	path := repo.HookPath(opts.HookName)

	backups := backup.New(opts.FS)
	if opts.Now != nil {
		backups.WithClock(opts.Now)
	}
	engine := reconcile.New(opts.FS, backups)

	plan, err := engine.PlanHook(path, opts.Block, opts.Interpreter)
	if err != nil {
		return nil, err
	}

	report := &ui.Report{
		Command: "add-hook",
		DryRun:  opts.DryRun,
		Target:  path,
		Changes: diff.Render(plan.ChangeSet),
		Summary: diff.Summary(plan.ChangeSet),
	}
	if repo.IsWorktree() {
		report.Notes = append(report.Notes, "Linked worktree: the hook is shared with "+repo.CommonDir)
	}
	if opts.DryRun || plan.ChangeSet.IsEmpty() {
		return report, nil
	}

	res, err := engine.ApplyHook(plan)
	if err != nil {
		return report, err
	}
	results := []*writer.Result{res}
	internal.Record(report, results)
	return report, internal.Prune(report, backups, results, opts.MaxBackups)
}
