package desired

import (
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/metadata"
	"github.com/arthur-debert/kilm/pkg/paths"
	"github.com/arthur-debert/kilm/pkg/types"
)

// SetupOptions configures BuildSetup
type SetupOptions struct {
	// LibraryDir holds symbols/ and footprints/
	LibraryDir string
	// EnvVar is set to LibraryDir and used in uris; empty writes absolute
	// uris and sets no variable
	EnvVar string
	// ThreeDEnvVar is set to ThreeDDir when both are given
	ThreeDEnvVar string
	ThreeDDir    string
	// Pin pins every scanned library
	Pin bool
}

// SetupResult is the desired state plus what the scan found
type SetupResult struct {
	State      types.DesiredState
	Symbols    []string
	Footprints []string
}

// BuildSetup scans the library directory and asks for every library in
// it. Entries already configured are left alone unless their uri moved.
func BuildSetup(fsys types.FS, opts SetupOptions) (*SetupResult, error) {
	logger := logging.GetLogger("desired")

	dir, err := paths.Normalize(opts.LibraryDir)
	if err != nil {
		return nil, err
	}

	symbols, footprints, err := ListLibraries(fsys, dir)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 && len(footprints) == 0 {
		return nil, errors.Newf(errors.ErrLibraryNotFound, "no libraries found in %s", dir).
			WithDetail("path", dir)
	}

	base := opts.EnvVar
	if base == "" {
		base = dir
	}
	descriptions := metadata.ReadDescriptions(fsys, dir)

	res := &SetupResult{Symbols: symbols, Footprints: footprints}
	add := func(kind types.Kind, names []string) error {
		for _, name := range names {
			uri, err := FormatURI(base, kind, name)
			if err != nil {
				return err
			}
			entry := NewEntry(kind, name, uri, descriptions.Lookup(kind, name))
			res.State.EnsureEntries = append(res.State.EnsureEntries, entry)
			if opts.Pin {
				res.State.PinSet = append(res.State.PinSet, types.PinChange{Identity: entry.Identity(), Pinned: true})
			}
		}
		return nil
	}
	if err := add(types.KindSymbol, symbols); err != nil {
		return nil, err
	}
	if err := add(types.KindFootprint, footprints); err != nil {
		return nil, err
	}

	if opts.EnvVar != "" {
		res.State.EnvVars = append(res.State.EnvVars, types.EnvVar{Name: opts.EnvVar, Value: dir})
	}
	if opts.ThreeDEnvVar != "" && opts.ThreeDDir != "" {
		threeD, err := paths.Normalize(opts.ThreeDDir)
		if err != nil {
			return nil, err
		}
		if info, err := fsys.Stat(threeD); err != nil || !info.IsDir() {
			logger.Warn().Str("path", threeD).Msg("3D model directory does not exist, setting the variable anyway")
		}
		res.State.EnvVars = append(res.State.EnvVars, types.EnvVar{Name: opts.ThreeDEnvVar, Value: threeD})
	}

	logger.Info().
		Str("dir", dir).
		Int("symbols", len(symbols)).
		Int("footprints", len(footprints)).
		Msg("Scanned library directory")
	return res, nil
}

// NewEntry returns an entry with KiCad's default fields
func NewEntry(kind types.Kind, name, uri, descr string) types.LibraryEntry {
	return types.LibraryEntry{
		Name: name,
		Kind: kind,
		URI:  uri,
		Options: []types.Option{
			{Key: "type", Value: "KiCad"},
			{Key: "options", Value: ""},
			{Key: "descr", Value: descr},
		},
	}
}
