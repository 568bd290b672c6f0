// Package add3d marks a directory as a 3D model library by writing its
// .kilm_metadata file.
package add3d

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/metadata"
	"github.com/arthur-debert/kilm/pkg/paths"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
)

// Add3DOptions holds options for the add-3d command
type Add3DOptions struct {
	FS          types.FS
	Dir         string
	Name        string
	Description string
	// Force discards an existing .kilm_metadata
	Force  bool
	DryRun bool
}

// Add3D writes or refreshes .kilm_metadata. The model count is always
// recounted.
func Add3D(opts Add3DOptions) (*ui.Report, error) {
	logger := logging.GetLogger("commands.add3d")

	dir, err := paths.Normalize(opts.Dir)
	if err != nil {
		return nil, err
	}
	if info, err := opts.FS.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "directory not found: %s", dir).WithDetail("path", dir)
	}
	logger.Debug().Str("dir", dir).Bool("force", opts.Force).Msg("Executing command")

	report := &ui.Report{Command: "add-3d", DryRun: opts.DryRun, Target: dir}

	existing, found, err := metadata.ReadCloud(opts.FS, dir)
	if err != nil && !opts.Force {
		return report, err
	}

	fresh, err := metadata.DefaultCloud(opts.FS, dir)
	if err != nil {
		return report, err
	}

	meta := fresh
	if found && !opts.Force {
		meta = existing
		meta.ModelCount = fresh.ModelCount
		meta.UpdatedWith = metadata.Tool
		if meta.Type == "" {
			meta.Type = fresh.Type
		}
		report.Changes = append(report.Changes, "~ update "+metadata.CloudFileName)
	} else {
		report.Changes = append(report.Changes, "+ write "+metadata.CloudFileName)
	}
	if opts.Name != "" {
		meta.Name = opts.Name
	}
	if opts.Description != "" {
		meta.Description = opts.Description
	}

	if meta.ModelCount == 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("no 3D model files (%v) found in %s", metadata.ModelExtensions, dir))
	} else {
		report.Notes = append(report.Notes, fmt.Sprintf("found %d 3D model files", meta.ModelCount))
	}

	if !opts.DryRun {
		if err := metadata.WriteCloud(opts.FS, dir, meta); err != nil {
			return report, err
		}
		report.Written = append(report.Written, ui.Written{Path: filepath.Join(dir, metadata.CloudFileName)})
	}

	report.Notes = append(report.Notes, "use it with: kilm setup --3d-dir "+dir)
	report.Summary = meta.Name
	logger.Info().Str("name", meta.Name).Int("models", meta.ModelCount).Msg("3D model library registered")
	return report, nil
}
