package status

import (
	"testing"

	"github.com/arthur-debert/kilm/pkg/commands/internal"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/testutil"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileFS(t *testing.T) types.FS {
	t.Helper()
	return testutil.NewFS(t, map[string]string{
		"/cfg/sym-lib-table":     "(sym_lib_table\n  (lib (name \"Power\")(type \"KiCad\")(uri \"${LIB}/symbols/Power.kicad_sym\")(options \"\")(descr \"Power symbols\"))\n)\n",
		"/cfg/fp-lib-table":      testutil.Table(types.KindFootprint, "Conn", "${LIB}/footprints/Conn.pretty"),
		"/cfg/kicad_common.json": `{"environment": {"vars": {"LIB": "/libs"}}, "session": {"pinned_fp_libs": ["Conn"]}}`,
	})
}

func TestStatus(t *testing.T) {
	fsys := profileFS(t)

	st, err := Status(StatusOptions{ProfileOptions: internal.ProfileOptions{FS: fsys, KiCadConfigDir: "/cfg"}})
	require.NoError(t, err)

	assert.Equal(t, "/cfg", st.Profile)
	assert.Equal(t, "override", st.Strategy)
	assert.Equal(t, []ui.LibraryStatus{
		{Kind: "symbol", Name: "Power", URI: "${LIB}/symbols/Power.kicad_sym", Description: "Power symbols"},
		{Kind: "footprint", Name: "Conn", URI: "${LIB}/footprints/Conn.pretty", Pinned: true},
	}, st.Libraries)
	assert.Equal(t, []ui.PathVariable{{Name: "LIB", Value: "/libs"}}, st.Variables)
}

func TestStatusKindFilter(t *testing.T) {
	fsys := profileFS(t)

	st, err := Status(StatusOptions{
		ProfileOptions: internal.ProfileOptions{FS: fsys, KiCadConfigDir: "/cfg"},
		Kind:           types.KindFootprint,
	})
	require.NoError(t, err)
	require.Len(t, st.Libraries, 1)
	assert.Equal(t, "Conn", st.Libraries[0].Name)
}

func TestStatusEmptyProfile(t *testing.T) {
	fsys := testutil.NewFS(t, map[string]string{"/cfg/sym-lib-table": testutil.EmptySymbolTable})

	st, err := Status(StatusOptions{ProfileOptions: internal.ProfileOptions{FS: fsys, KiCadConfigDir: "/cfg"}})
	require.NoError(t, err)
	assert.Empty(t, st.Libraries)
	assert.NotNil(t, st.Libraries)
	assert.Empty(t, st.Variables)
}

func TestStatusNoProfile(t *testing.T) {
	fsys := filesystem.NewMemory()

	_, err := Status(StatusOptions{ProfileOptions: internal.ProfileOptions{FS: fsys, KiCadConfigDir: "/missing"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
}
