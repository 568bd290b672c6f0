// Package reconcile runs the read, plan and write cycle for one KiCad
// profile or one hook script.
//
// Planning reads every artifact but writes nothing, so a dry run and a
// real run print the same ChangeSet. Applying handles the symbol table,
// the footprint table and kicad_common.json independently: a failure in
// one does not stop the others and nothing is rolled back.
package reconcile

import (
	"github.com/arthur-debert/kilm/pkg/backup"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/hookdoc"
	"github.com/arthur-debert/kilm/pkg/kicadcommon"
	"github.com/arthur-debert/kilm/pkg/libtable"
	"github.com/arthur-debert/kilm/pkg/locator"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/merge"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/writer"
)

// Engine reconciles artifacts on a filesystem
type Engine struct {
	fs     types.FS
	writer *writer.Writer
}

// New creates an Engine; backups are taken with backups
func New(fsys types.FS, backups *backup.Manager) *Engine {
	return &Engine{fs: fsys, writer: writer.New(fsys, backups)}
}

// ProfilePlan is the planned change to one KiCad profile
type ProfilePlan struct {
	Profile   locator.Profile
	Current   merge.Current
	ChangeSet *types.ChangeSet
	Warnings  []string
}

// HookPlan is the planned change to one hook script
type HookPlan struct {
	Path        string
	Interpreter string
	Exists      bool
	ChangeSet   *types.ChangeSet
}

// ReadProfile decodes both library tables and kicad_common.json. Missing
// files read as empty. Entries carry their pinned flag.
func (e *Engine) ReadProfile(p locator.Profile) (merge.Current, []string, error) {
	var current merge.Current
	var warnings []string

	data, _, err := filesystem.ReadArtifact(e.fs, p.SettingsPath())
	if err != nil {
		return current, nil, err
	}
	settings, err := kicadcommon.Decode(data)
	if err != nil {
		return current, nil, errors.WithPath(err, p.SettingsPath())
	}

	for _, kind := range types.Kinds {
		path := p.TablePath(kind)
		data, _, err := filesystem.ReadArtifact(e.fs, path)
		if err != nil {
			return current, nil, err
		}
		table, err := libtable.Decode(kind, data)
		if err != nil {
			return current, nil, errors.WithPath(err, path)
		}
		for _, w := range table.Warnings {
			warnings = append(warnings, path+": "+w)
		}
		for _, entry := range table.Entries() {
			entry.Pinned = settings.IsPinned(entry.Identity())
			current.Entries = append(current.Entries, entry)
		}
	}

	current.EnvVars = settings.EnvVars()
	return current, warnings, nil
}

// PlanProfile computes the ChangeSet for desired against the profile
func (e *Engine) PlanProfile(p locator.Profile, desired types.DesiredState) (*ProfilePlan, error) {
	logger := logging.GetLogger("reconcile")

	current, warnings, err := e.ReadProfile(p)
	if err != nil {
		return nil, err
	}
	planned, err := merge.PlanLibraries(current, desired)
	if err != nil {
		return nil, err
	}

	plan := &ProfilePlan{
		Profile:   p,
		Current:   current,
		ChangeSet: planned.ChangeSet,
		Warnings:  append(warnings, planned.Warnings...),
	}
	logger.Debug().
		Str("profile", p.Dir).
		Bool("empty", plan.ChangeSet.IsEmpty()).
		Int("warnings", len(plan.Warnings)).
		Msg("Planned profile")
	return plan, nil
}

// ApplyProfile writes each artifact the plan touches. The results list
// every artifact that was attempted, and the error joins the failures.
func (e *Engine) ApplyProfile(plan *ProfilePlan) ([]*writer.Result, error) {
	logger := logging.GetLogger("reconcile")
	if plan.ChangeSet.IsEmpty() {
		logger.Info().Str("profile", plan.Profile.Dir).Msg("Profile already up to date")
		return nil, nil
	}
	defer logging.LogOperationStart(logger, "apply-profile")()

	var results []*writer.Result
	var errs []error
	record := func(res *writer.Result, err error) {
		if err != nil {
			logger.Error().Err(err).Msg("Artifact not updated")
			errs = append(errs, err)
			return
		}
		if res.Changed {
			results = append(results, res)
		}
	}

	for _, kind := range types.Kinds {
		record(e.writer.ApplyTable(plan.Profile.TablePath(kind), kind, plan.ChangeSet))
	}
	record(e.writer.ApplySettings(plan.Profile.SettingsPath(), plan.ChangeSet))

	return results, errors.Join(errs...)
}

// PlanHook computes the managed block change for the hook at path
func (e *Engine) PlanHook(path, text, interpreter string) (*HookPlan, error) {
	data, exists, err := filesystem.ReadArtifact(e.fs, path)
	if err != nil {
		return nil, err
	}

	var doc *hookdoc.Document
	if exists {
		if doc, err = hookdoc.Decode(data); err != nil {
			return nil, errors.WithPath(err, path)
		}
	}
	if interpreter == "" {
		interpreter = hookdoc.DefaultInterpreter
	}
	return &HookPlan{
		Path:        path,
		Interpreter: interpreter,
		Exists:      exists,
		ChangeSet:   merge.PlanHook(doc, &text),
	}, nil
}

// ApplyHook writes the planned managed block
func (e *Engine) ApplyHook(plan *HookPlan) (*writer.Result, error) {
	return e.writer.ApplyHook(plan.Path, plan.ChangeSet, plan.Interpreter)
}
