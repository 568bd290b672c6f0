package update

import (
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/testutil"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pullRunner answers rev-parse and simulates a pull by running onPull
type pullRunner struct {
	top    string
	out    string
	onPull func()
	calls  []string
}

func (p *pullRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	p.calls = append(p.calls, strings.Join(args, " "))
	switch args[0] {
	case "rev-parse":
		if p.top == "" {
			return "", errors.New(errors.ErrCommandFailed, "fatal: not a git repository")
		}
		return p.top, nil
	case "pull":
		if p.onPull != nil {
			p.onPull()
		}
		return p.out, nil
	}
	return "", errors.Newf(errors.ErrCommandFailed, "unexpected git %v", args)
}

func libraryFS(t *testing.T) types.FS {
	t.Helper()
	fsys := testutil.NewFS(t, nil)
	testutil.NewLibrary(t, fsys, "/libs").Symbols("Power").Footprints("Conn")
	return fsys
}

func TestUpdateReportsNewLibraries(t *testing.T) {
	fsys := libraryFS(t)
	git := &pullRunner{top: "/libs", out: "Updating 1a2b..3c4d\nFast-forward", onPull: func() {
		testutil.NewLibrary(t, fsys, "/libs").Symbols("Sensors").Footprints("SOT")
	}}

	report, err := Update(context.Background(), UpdateOptions{FS: fsys, Git: git, LibraryDir: "/libs"})
	require.NoError(t, err)

	assert.Equal(t, []string{"rev-parse --show-toplevel", "pull --ff-only"}, git.calls)
	assert.Equal(t, []string{
		"+ new symbol library Sensors",
		"+ new footprint library SOT",
	}, report.Changes)
	assert.Equal(t, "2 new libraries", report.Summary)
	assert.Contains(t, report.Notes, "git: Fast-forward")
	assert.Contains(t, report.Notes, "run 'kilm setup /libs' to add the new libraries to KiCad")
}

func TestUpdateNothingNew(t *testing.T) {
	fsys := libraryFS(t)
	git := &pullRunner{top: "/libs", out: "Already up to date."}

	report, err := Update(context.Background(), UpdateOptions{FS: fsys, Git: git, LibraryDir: "/libs"})
	require.NoError(t, err)
	assert.Empty(t, report.Changes)
	assert.Equal(t, []string{"git: Already up to date."}, report.Notes)
}

func TestUpdateDryRun(t *testing.T) {
	fsys := libraryFS(t)
	git := &pullRunner{top: "/libs"}

	report, err := Update(context.Background(), UpdateOptions{FS: fsys, Git: git, LibraryDir: "/libs", DryRun: true})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, []string{"rev-parse --show-toplevel"}, git.calls)
}

func TestUpdateNotARepository(t *testing.T) {
	fsys := libraryFS(t)

	_, err := Update(context.Background(), UpdateOptions{FS: fsys, Git: &pullRunner{}, LibraryDir: "/libs"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotAGitRepository))
	assert.Equal(t, 3, errors.ExitCode(err))
}
