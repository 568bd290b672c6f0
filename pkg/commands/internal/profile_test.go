package internal

import (
	"fmt"
	"testing"
	"time"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dir = "/cfg/kicad/9.0"

func options(t *testing.T) ProfileOptions {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	require.NoError(t, fsys.WriteFile(dir+"/sym-lib-table", []byte("(sym_lib_table\n  (version 7)\n)\n"), 0644))

	tick := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return ProfileOptions{
		FS:             fsys,
		KiCadConfigDir: "/cfg/kicad",
		GOOS:           "linux",
		Now: func() time.Time {
			tick = tick.Add(time.Second)
			return tick
		},
	}
}

func ensure(name string) types.DesiredState {
	return types.DesiredState{EnsureEntries: []types.LibraryEntry{
		{Kind: types.KindSymbol, Name: name, URI: "/libs/" + name + ".kicad_sym"},
	}}
}

func TestReconcileProfileDryRun(t *testing.T) {
	o := options(t)
	o.DryRun = true

	report, err := ReconcileProfile("setup", o, ensure("A"))
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, dir, report.Target)
	assert.Equal(t, []string{"+ add symbol library A (/libs/A.kicad_sym)"}, report.Changes)
	assert.Empty(t, report.Written)

	data, err := o.FS.ReadFile(dir + "/sym-lib-table")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "A.kicad_sym")
}

func TestReconcileProfileWritesAndPrunes(t *testing.T) {
	o := options(t)
	o.MaxBackups = 2

	for i := 0; i < 4; i++ {
		report, err := ReconcileProfile("setup", o, ensure(fmt.Sprintf("L%d", i)))
		require.NoError(t, err)
		require.Len(t, report.Written, 1)
		assert.NotEmpty(t, report.Written[0].Backup)
		if i >= 2 {
			assert.Len(t, report.Pruned, 1)
		}
	}

	backups, err := o.Backups().List(dir + "/sym-lib-table")
	require.NoError(t, err)
	assert.Len(t, backups, 2)

	report, err := ReconcileProfile("setup", o, ensure("L3"))
	require.NoError(t, err)
	assert.Empty(t, report.Changes)
	assert.Empty(t, report.Written)
	assert.Equal(t, "no changes", report.Summary)
}

func TestReconcileProfileNotFound(t *testing.T) {
	o := options(t)
	o.KiCadConfigDir = "/nowhere"

	_, err := ReconcileProfile("setup", o, ensure("A"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
}
