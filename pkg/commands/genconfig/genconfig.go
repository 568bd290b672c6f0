package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/kilm/pkg/config"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
)

// GenConfigOptions holds options for the config command
type GenConfigOptions struct {
	FS types.FS
	// Config is the effective configuration printed when Write is false
	Config *config.Config
	// Write stores the commented defaults at Path instead of printing
	Write bool
	Path  string
	Force bool
}

// GenConfigResult is the printed content and any file written
type GenConfigResult struct {
	ConfigContent string
	FilesWritten  []string
}

// GenConfig renders the effective configuration, or writes a commented
// starter file
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	if !opts.Write {
		cfg := opts.Config
		if cfg == nil {
			cfg = config.Default()
		}
		content, err := cfg.TOML()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
		}
		logger.Debug().Msg("Outputting effective config")
		return &GenConfigResult{ConfigContent: string(content), FilesWritten: []string{}}, nil
	}

	if opts.Path == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no config file path given")
	}
	content := config.GenerateConfigContent()
	result := &GenConfigResult{ConfigContent: content, FilesWritten: []string{}}

	if _, err := opts.FS.Stat(opts.Path); err == nil && !opts.Force {
		logger.Warn().Str("path", opts.Path).Msg("Config file already exists, skipping")
		return result, nil
	}
	dir := filepath.Dir(opts.Path)
	if err := opts.FS.MkdirAll(dir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to create directory %s", dir).WithDetail("path", dir)
	}
	if err := opts.FS.WriteFile(opts.Path, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to write config to %s", opts.Path).
			WithDetail("path", opts.Path)
	}

	logger.Info().Str("path", opts.Path).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, opts.Path)
	return result, nil
}
