// Package internal holds the read, plan and write flow shared by the
// commands that change a KiCad profile or a hook.
package internal

import (
	"runtime"
	"time"

	"github.com/arthur-debert/kilm/pkg/backup"
	"github.com/arthur-debert/kilm/pkg/diff"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/locator"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/reconcile"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/arthur-debert/kilm/pkg/writer"
)

// ProfileOptions are shared by every command that edits a KiCad profile
type ProfileOptions struct {
	FS types.FS
	// KiCadConfigDir overrides profile discovery
	KiCadConfigDir string
	// GOOS selects the platform conventions; empty means runtime.GOOS
	GOOS   string
	DryRun bool
	// MaxBackups keeps at most this many backups per artifact after a
	// successful write; 0 keeps all
	MaxBackups int
	// Now is the backup clock; nil means time.Now
	Now func() time.Time
}

// FindProfile locates the KiCad profile
func (o ProfileOptions) FindProfile() (*locator.Profile, error) {
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	return locator.FindProfile(o.FS, locator.DefaultStrategies(o.KiCadConfigDir, goos))
}

// Backups returns the backup manager for these options
func (o ProfileOptions) Backups() *backup.Manager {
	m := backup.New(o.FS)
	if o.Now != nil {
		m.WithClock(o.Now)
	}
	return m
}

// ReconcileProfile plans desired against the located profile and, unless
// this is a dry run, writes the result. The report is returned even when
// writing failed, so callers can show what was done.
func ReconcileProfile(command string, o ProfileOptions, desired types.DesiredState) (*ui.Report, error) {
	logger := logging.GetLogger("commands." + command)

	profile, err := o.FindProfile()
	if err != nil {
		return nil, err
	}
	logger.Info().Str("profile", profile.Dir).Str("strategy", profile.Strategy).Msg("Using KiCad profile")

	backups := o.Backups()
	engine := reconcile.New(o.FS, backups)
	plan, err := engine.PlanProfile(*profile, desired)
	if err != nil {
		return nil, err
	}

	report := &ui.Report{
		Command:  command,
		DryRun:   o.DryRun,
		Target:   profile.Dir,
		Changes:  diff.Render(plan.ChangeSet),
		Summary:  diff.Summary(plan.ChangeSet),
		Warnings: plan.Warnings,
	}
	if o.DryRun || plan.ChangeSet.IsEmpty() {
		return report, nil
	}

	results, applyErr := engine.ApplyProfile(plan)
	Record(report, results)
	if applyErr != nil {
		return report, applyErr
	}
	return report, Prune(report, backups, results, o.MaxBackups)
}

// Record adds written artifacts to the report
func Record(report *ui.Report, results []*writer.Result) {
	for _, res := range results {
		w := ui.Written{Path: res.Path}
		if res.Backup != nil {
			w.Backup = res.Backup.BackupPath
		}
		report.Written = append(report.Written, w)
	}
}

// Prune applies backup retention to every written artifact
func Prune(report *ui.Report, backups *backup.Manager, results []*writer.Result, keep int) error {
	if keep <= 0 {
		return nil
	}
	var errs []error
	for _, res := range results {
		removed, err := backups.Prune(res.Path, keep)
		if err != nil {
			errs = append(errs, err)
		}
		report.Pruned = append(report.Pruned, removed...)
	}
	return errors.Join(errs...)
}
