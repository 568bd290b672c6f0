// Package initialize prepares a directory as a kilm library collection:
// the library folders, kilm.yaml and a library_descriptions.yaml
// template.
package initialize

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/metadata"
	"github.com/arthur-debert/kilm/pkg/paths"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// InitOptions holds options for the init command
type InitOptions struct {
	FS          types.FS
	Dir         string
	Name        string
	Description string
	EnvVar      string
	// NoEnvVar records no path variable; setup then writes absolute uris
	NoEnvVar bool
	// Force replaces an existing kilm.yaml with fresh metadata
	Force  bool
	DryRun bool
}

// Init creates what is missing and leaves the rest alone
func Init(opts InitOptions) (*ui.Report, error) {
	logger := logging.GetLogger("commands.init")

	dir, err := paths.Normalize(opts.Dir)
	if err != nil {
		return nil, err
	}
	if info, err := opts.FS.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "directory not found: %s", dir).WithDetail("path", dir)
	}
	logger.Debug().Str("dir", dir).Bool("force", opts.Force).Msg("Executing command")

	report := &ui.Report{Command: "init", DryRun: opts.DryRun, Target: dir}
	sfs := synthfs.New()
	var ops []synthfs.Operation

	for _, sub := range []string{metadata.SymbolsDir, metadata.FootprintsDir, metadata.TemplatesDir} {
		path := filepath.Join(dir, sub)
		if _, err := opts.FS.Stat(path); err == nil {
			continue
		}
		report.Changes = append(report.Changes, "+ create directory "+sub)
		ops = append(ops, sfs.CreateDirWithID("init-dir-"+sub, path, 0755))
	}

	existing, found, err := metadata.Read(opts.FS, dir)
	if err != nil && !opts.Force {
		return report, err
	}

	meta := existing
	if !found || opts.Force {
		meta = metadata.Default(opts.FS, dir)
		report.Changes = append(report.Changes, "+ write "+metadata.FileName)
	} else {
		report.Changes = append(report.Changes, "~ update "+metadata.FileName)
	}
	applyOverrides(meta, opts)
	// capabilities reflect the folders as they will be after this run
	meta.Capabilities = metadata.Capabilities{Symbols: true, Footprints: true, Templates: true}
	meta.UpdatedWith = metadata.Tool

	metaPath := filepath.Join(dir, metadata.FileName)
	metaData, err := metadata.Encode(meta)
	if err != nil {
		return report, err
	}
	// kilm.yaml may already exist, which a create operation refuses
	ops = append(ops, sfs.CustomOperationWithID("init-metadata",
		func(_ context.Context, fsys synthfilesystem.FileSystem) error {
			return fsys.WriteFile(metaPath, metaData, 0644)
		}))
	written := []ui.Written{{Path: metaPath}}

	descriptions := filepath.Join(dir, metadata.DescriptionsFileName)
	if _, err := opts.FS.Stat(descriptions); err != nil {
		report.Changes = append(report.Changes, "+ write "+metadata.DescriptionsFileName)
		ops = append(ops, sfs.CreateFileWithID("init-descriptions", descriptions,
			[]byte(metadata.DescriptionsTemplate), 0644))
		written = append(written, ui.Written{Path: descriptions})
	}

	if !opts.DryRun {
		if _, err := synthfs.Run(context.Background(), filesystem.ForSynth(opts.FS), ops...); err != nil {
			return report, errors.Wrapf(err, errors.ErrFileAccess, "cannot initialize %s", dir).WithDetail("path", dir)
		}
		report.Written = append(report.Written, written...)
	}

	if meta.EnvVar != "" {
		report.Notes = append(report.Notes, "path variable: "+meta.EnvVar)
	}
	report.Summary = meta.Name
	logger.Info().Str("name", meta.Name).Str("env_var", meta.EnvVar).Msg("Library collection initialized")
	return report, nil
}

func applyOverrides(m *metadata.Metadata, opts InitOptions) {
	if opts.Name != "" {
		m.Name = opts.Name
		if opts.EnvVar == "" {
			m.EnvVar = metadata.GenerateEnvVarName(opts.Name, metadata.DefaultEnvVarPrefix)
		}
	}
	if opts.Description != "" {
		m.Description = opts.Description
	}
	if opts.EnvVar != "" {
		m.EnvVar = opts.EnvVar
	}
	if opts.NoEnvVar {
		m.EnvVar = ""
	}
	if m.CreatedWith == "" {
		m.CreatedWith = metadata.Tool
	}
}
