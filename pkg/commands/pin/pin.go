package pin

import (
	"github.com/arthur-debert/kilm/pkg/commands/internal"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
)

// PinOptions holds options for the pin and unpin commands
type PinOptions struct {
	internal.ProfileOptions

	Kind   types.Kind
	Names  []string
	Pinned bool
}

// Pin sets the pinned flag of configured libraries
func Pin(opts PinOptions) (*ui.Report, error) {
	command := "pin"
	if !opts.Pinned {
		command = "unpin"
	}
	logger := logging.GetLogger("commands." + command)
	logger.Debug().Str("kind", string(opts.Kind)).Strs("names", opts.Names).Msg("Executing command")

	if len(opts.Names) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no library names given")
	}

	var state types.DesiredState
	for _, name := range opts.Names {
		state.PinSet = append(state.PinSet, types.PinChange{
			Identity: types.Identity{Kind: opts.Kind, Name: name},
			Pinned:   opts.Pinned,
		})
	}
	return internal.ReconcileProfile(command, opts.ProfileOptions, state)
}
