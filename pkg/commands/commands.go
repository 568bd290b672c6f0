// Package commands implements the kilm commands on top of the reconcile
// engine.
//
// Each command lives in its own subdirectory:
//   - setup/      - add a library directory to the KiCad profile
//   - apply/      - reconcile a declaration file
//   - pin/        - pin and unpin libraries
//   - remove/     - drop libraries from a table
//   - status/     - show the KiCad profile
//   - addhook/    - manage the hook block in a library repository
//   - update/     - pull a library collection
//   - initialize/ - prepare a library collection
//   - add3d/      - mark a 3D model directory
//   - genconfig/  - print or write kilm configuration
//   - internal/   - the shared plan and write flow
//
// This file re-exports the command functions for the CLI.
package commands

import (
	"context"

	"github.com/arthur-debert/kilm/pkg/commands/add3d"
	"github.com/arthur-debert/kilm/pkg/commands/addhook"
	"github.com/arthur-debert/kilm/pkg/commands/apply"
	"github.com/arthur-debert/kilm/pkg/commands/genconfig"
	"github.com/arthur-debert/kilm/pkg/commands/initialize"
	"github.com/arthur-debert/kilm/pkg/commands/internal"
	"github.com/arthur-debert/kilm/pkg/commands/pin"
	"github.com/arthur-debert/kilm/pkg/commands/remove"
	"github.com/arthur-debert/kilm/pkg/commands/setup"
	"github.com/arthur-debert/kilm/pkg/commands/status"
	"github.com/arthur-debert/kilm/pkg/commands/update"
	"github.com/arthur-debert/kilm/pkg/ui"
)

// ProfileOptions are shared by the commands that edit a KiCad profile
type ProfileOptions = internal.ProfileOptions

// Setup adds the libraries of a directory to KiCad.
type SetupOptions = setup.SetupOptions

func Setup(opts SetupOptions) (*ui.Report, error) {
	return setup.Setup(opts)
}

// Apply reconciles a declaration file.
type ApplyOptions = apply.ApplyOptions

func Apply(ctx context.Context, opts ApplyOptions) ([]*ui.Report, error) {
	return apply.Apply(ctx, opts)
}

// Pin sets or clears the pinned flag of libraries.
type PinOptions = pin.PinOptions

func Pin(opts PinOptions) (*ui.Report, error) {
	return pin.Pin(opts)
}

// Remove drops libraries from a table.
type RemoveOptions = remove.RemoveOptions

func Remove(opts RemoveOptions) (*ui.Report, error) {
	return remove.Remove(opts)
}

// Status reads the KiCad profile.
type StatusOptions = status.StatusOptions

func Status(opts StatusOptions) (*ui.Status, error) {
	return status.Status(opts)
}

// AddHook ensures the managed block in a repository hook.
type AddHookOptions = addhook.AddHookOptions

func AddHook(ctx context.Context, opts AddHookOptions) (*ui.Report, error) {
	return addhook.AddHook(ctx, opts)
}

// Update pulls a library collection.
type UpdateOptions = update.UpdateOptions

func Update(ctx context.Context, opts UpdateOptions) (*ui.Report, error) {
	return update.Update(ctx, opts)
}

// Init prepares a library collection.
type InitOptions = initialize.InitOptions

func Init(opts InitOptions) (*ui.Report, error) {
	return initialize.Init(opts)
}

// Add3D writes the metadata of a 3D model directory.
type Add3DOptions = add3d.Add3DOptions

func Add3D(opts Add3DOptions) (*ui.Report, error) {
	return add3d.Add3D(opts)
}

// GenConfig prints or writes configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*genconfig.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
