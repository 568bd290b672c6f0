// Package status reports the libraries and path variables of the KiCad
// profile kilm would edit. It never writes.
package status

import (
	"github.com/arthur-debert/kilm/pkg/commands/internal"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/reconcile"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
)

// StatusOptions holds options for the status command
type StatusOptions struct {
	internal.ProfileOptions

	// Kind limits the listing to one table; empty lists both
	Kind types.Kind
}

// Status reads the located profile
func Status(opts StatusOptions) (*ui.Status, error) {
	logger := logging.GetLogger("commands.status")

	profile, err := opts.FindProfile()
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("profile", profile.Dir).Msg("Reading profile")

	engine := reconcile.New(opts.FS, opts.Backups())
	current, warnings, err := engine.ReadProfile(*profile)
	if err != nil {
		return nil, err
	}

	st := &ui.Status{
		Profile:   profile.Dir,
		Version:   profile.Version,
		Strategy:  profile.Strategy,
		Libraries: []ui.LibraryStatus{},
		Variables: []ui.PathVariable{},
		Warnings:  warnings,
	}
	for _, e := range current.Entries {
		if opts.Kind != "" && e.Kind != opts.Kind {
			continue
		}
		st.Libraries = append(st.Libraries, ui.LibraryStatus{
			Kind:        string(e.Kind),
			Name:        e.Name,
			URI:         e.URI,
			Description: e.Description(),
			Pinned:      e.Pinned,
		})
	}
	for _, v := range current.EnvVars {
		st.Variables = append(st.Variables, ui.PathVariable{Name: v.Name, Value: v.Value})
	}

	logger.Info().Int("libraries", len(st.Libraries)).Int("variables", len(st.Variables)).Msg("Status complete")
	return st, nil
}
