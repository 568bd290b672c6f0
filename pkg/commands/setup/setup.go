package setup

import (
	"github.com/arthur-debert/kilm/pkg/commands/internal"
	"github.com/arthur-debert/kilm/pkg/desired"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/ui"
)

// MsgRestartKiCad is appended when a profile was written
const MsgRestartKiCad = "Restart KiCad to pick up the new libraries."

// SetupOptions holds options for the setup command
type SetupOptions struct {
	internal.ProfileOptions

	// LibraryDir holds symbols/ and footprints/
	LibraryDir string
	// EnvVar names the path variable pointing at LibraryDir; empty
	// writes absolute uris
	EnvVar       string
	ThreeDEnvVar string
	ThreeDDir    string
	Pin          bool
}

// Setup configures KiCad to use every library in a library directory
func Setup(opts SetupOptions) (*ui.Report, error) {
	logger := logging.GetLogger("commands.setup")
	logger.Debug().Str("library_dir", opts.LibraryDir).Bool("pin", opts.Pin).Msg("Executing command")

	scan, err := desired.BuildSetup(opts.FS, desired.SetupOptions{
		LibraryDir:   opts.LibraryDir,
		EnvVar:       opts.EnvVar,
		ThreeDEnvVar: opts.ThreeDEnvVar,
		ThreeDDir:    opts.ThreeDDir,
		Pin:          opts.Pin,
	})
	if err != nil {
		return nil, err
	}

	report, err := internal.ReconcileProfile("setup", opts.ProfileOptions, scan.State)
	if report != nil && len(report.Written) > 0 {
		report.Notes = append(report.Notes, MsgRestartKiCad)
	}
	return report, err
}
