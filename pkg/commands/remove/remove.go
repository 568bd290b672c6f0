package remove

import (
	"github.com/arthur-debert/kilm/pkg/commands/internal"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
)

// RemoveOptions holds options for the remove command
type RemoveOptions struct {
	internal.ProfileOptions

	Kind  types.Kind
	Names []string
}

// Remove deletes libraries from a table. Pins in kicad_common.json are
// left as they are.
func Remove(opts RemoveOptions) (*ui.Report, error) {
	logger := logging.GetLogger("commands.remove")
	logger.Debug().Str("kind", string(opts.Kind)).Strs("names", opts.Names).Msg("Executing command")

	if len(opts.Names) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no library names given")
	}

	var state types.DesiredState
	for _, name := range opts.Names {
		state.RemoveEntries = append(state.RemoveEntries, types.Identity{Kind: opts.Kind, Name: name})
	}
	return internal.ReconcileProfile("remove", opts.ProfileOptions, state)
}
