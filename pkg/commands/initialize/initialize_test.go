package initialize

import (
	"testing"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFreshDirectory(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/work/my-parts", 0755))

	report, err := Init(InitOptions{FS: fsys, Dir: "/work/my-parts"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"+ create directory symbols",
		"+ create directory footprints",
		"+ create directory templates",
		"+ write kilm.yaml",
		"+ write library_descriptions.yaml",
	}, report.Changes)
	assert.Len(t, report.Written, 2)

	for _, sub := range []string{"symbols", "footprints", "templates"} {
		info, err := fsys.Stat("/work/my-parts/" + sub)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	meta, found, err := metadata.Read(fsys, "/work/my-parts")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "my-parts", meta.Name)
	assert.Equal(t, "KICAD_LIB_MY_PARTS", meta.EnvVar)
	assert.Equal(t, metadata.Capabilities{Symbols: true, Footprints: true, Templates: true}, meta.Capabilities)

	data, err := fsys.ReadFile("/work/my-parts/library_descriptions.yaml")
	require.NoError(t, err)
	assert.Equal(t, metadata.DescriptionsTemplate, string(data))
}

func TestInitKeepsExistingMetadata(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/lib/symbols", 0755))
	require.NoError(t, metadata.Write(fsys, "/lib", &metadata.Metadata{
		Name:        "Shared",
		Description: "team parts",
		EnvVar:      "TEAM_LIB",
		CreatedWith: "someone",
	}))
	require.NoError(t, fsys.WriteFile("/lib/library_descriptions.yaml", []byte("symbols: {}\n"), 0644))

	report, err := Init(InitOptions{FS: fsys, Dir: "/lib", Description: "shared parts"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"+ create directory footprints",
		"+ create directory templates",
		"~ update kilm.yaml",
	}, report.Changes)

	meta, _, err := metadata.Read(fsys, "/lib")
	require.NoError(t, err)
	assert.Equal(t, "Shared", meta.Name)
	assert.Equal(t, "shared parts", meta.Description)
	assert.Equal(t, "TEAM_LIB", meta.EnvVar)
	assert.Equal(t, "someone", meta.CreatedWith)
	assert.Equal(t, "kilm", meta.UpdatedWith)

	data, err := fsys.ReadFile("/lib/library_descriptions.yaml")
	require.NoError(t, err)
	assert.Equal(t, "symbols: {}\n", string(data))
}

func TestInitOverrides(t *testing.T) {
	tests := []struct {
		name   string
		opts   InitOptions
		envVar string
	}{
		{name: "name derives env var", opts: InitOptions{Name: "Acme Parts"}, envVar: "KICAD_LIB_ACME_PARTS"},
		{name: "explicit env var", opts: InitOptions{Name: "Acme", EnvVar: "ACME"}, envVar: "ACME"},
		{name: "no env var", opts: InitOptions{NoEnvVar: true}, envVar: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewMemory()
			require.NoError(t, fsys.MkdirAll("/lib", 0755))
			opts := tt.opts
			opts.FS = fsys
			opts.Dir = "/lib"

			_, err := Init(opts)
			require.NoError(t, err)
			meta, _, err := metadata.Read(fsys, "/lib")
			require.NoError(t, err)
			assert.Equal(t, tt.envVar, meta.EnvVar)
		})
	}
}

func TestInitDryRun(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/lib", 0755))

	report, err := Init(InitOptions{FS: fsys, Dir: "/lib", DryRun: true})
	require.NoError(t, err)
	assert.Len(t, report.Changes, 5)
	assert.Empty(t, report.Written)

	_, found, err := metadata.Read(fsys, "/lib")
	require.NoError(t, err)
	assert.False(t, found)
	_, err = fsys.Stat("/lib/symbols")
	assert.Error(t, err)
}

func TestInitErrors(t *testing.T) {
	fsys := filesystem.NewMemory()

	_, err := Init(InitOptions{FS: fsys, Dir: "/nope"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	require.NoError(t, fsys.MkdirAll("/bad", 0755))
	require.NoError(t, fsys.WriteFile("/bad/kilm.yaml", []byte("name: [unclosed"), 0644))
	_, err = Init(InitOptions{FS: fsys, Dir: "/bad"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	_, err = Init(InitOptions{FS: fsys, Dir: "/bad", Force: true})
	assert.NoError(t, err)
}

func TestInitRerun(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/lib", 0755))

	_, err := Init(InitOptions{FS: fsys, Dir: "/lib", Name: "Parts"})
	require.NoError(t, err)
	require.NoError(t, fsys.WriteFile("/lib/library_descriptions.yaml", []byte("symbols:\n  A: a\n"), 0644))

	report, err := Init(InitOptions{FS: fsys, Dir: "/lib", Description: "second pass"})
	require.NoError(t, err)
	assert.Equal(t, []string{"~ update kilm.yaml"}, report.Changes)
	assert.Len(t, report.Written, 1)

	meta, _, err := metadata.Read(fsys, "/lib")
	require.NoError(t, err)
	assert.Equal(t, "Parts", meta.Name)
	assert.Equal(t, "second pass", meta.Description)

	data, err := fsys.ReadFile("/lib/library_descriptions.yaml")
	require.NoError(t, err)
	assert.Equal(t, "symbols:\n  A: a\n", string(data))
}
