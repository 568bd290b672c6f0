package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("(sym_lib_table\n)\n"), 0644))
}

func fixed(name, root string) Strategy {
	return Strategy{Name: name, Root: func() string { return root }}
}

func TestFindProfile(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, base string)
		strategies  func(base string) []Strategy
		wantDir     string
		wantVersion string
		wantName    string
	}{
		{
			name: "newest version with a table wins",
			setup: func(t *testing.T, base string) {
				touch(t, filepath.Join(base, "kicad", "7.0", "sym-lib-table"))
				touch(t, filepath.Join(base, "kicad", "9.0", "fp-lib-table"))
				touch(t, filepath.Join(base, "kicad", "10.0", "kicad_common.json"))
				require.NoError(t, os.MkdirAll(filepath.Join(base, "kicad", "scripting"), 0755))
			},
			strategies:  func(base string) []Strategy { return []Strategy{fixed("platform", filepath.Join(base, "kicad"))} },
			wantDir:     "kicad/9.0",
			wantVersion: "9.0",
			wantName:    "platform",
		},
		{
			name: "root holding tables directly",
			setup: func(t *testing.T, base string) {
				touch(t, filepath.Join(base, "custom", "sym-lib-table"))
			},
			strategies: func(base string) []Strategy { return []Strategy{fixed("override", filepath.Join(base, "custom"))} },
			wantDir:    "custom",
			wantName:   "override",
		},
		{
			name: "first qualifying strategy wins",
			setup: func(t *testing.T, base string) {
				require.NoError(t, os.MkdirAll(filepath.Join(base, "empty", "8.0"), 0755))
				touch(t, filepath.Join(base, "flatpak", "8.0", "sym-lib-table"))
				touch(t, filepath.Join(base, "later", "8.0", "sym-lib-table"))
			},
			strategies: func(base string) []Strategy {
				return []Strategy{
					fixed("unset", ""),
					fixed("platform", filepath.Join(base, "empty")),
					fixed("missing", filepath.Join(base, "nowhere")),
					fixed("flatpak", filepath.Join(base, "flatpak")),
					fixed("later", filepath.Join(base, "later")),
				}
			},
			wantDir:     "flatpak/8.0",
			wantVersion: "8.0",
			wantName:    "flatpak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			tt.setup(t, base)

			p, err := FindProfile(filesystem.NewOS(), tt.strategies(base))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(base, tt.wantDir), p.Dir)
			assert.Equal(t, tt.wantVersion, p.Version)
			assert.Equal(t, tt.wantName, p.Strategy)
			assert.Equal(t, filepath.Join(p.Dir, "sym-lib-table"), p.TablePath(types.KindSymbol))
			assert.Equal(t, filepath.Join(p.Dir, "fp-lib-table"), p.TablePath(types.KindFootprint))
			assert.Equal(t, filepath.Join(p.Dir, "kicad_common.json"), p.SettingsPath())
		})
	}
}

func TestFindProfileNotFound(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "kicad", "8.0"), 0755))

	_, err := FindProfile(filesystem.NewOS(), []Strategy{fixed("platform", filepath.Join(base, "kicad"))})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
	assert.Equal(t, 2, errors.ExitCode(err))
	assert.Contains(t, err.Error(), filepath.Join(base, "kicad"))
	assert.Contains(t, err.Error(), "run KiCad once")
}

func TestDefaultStrategies(t *testing.T) {
	t.Setenv("HOME", "/home/ada")
	t.Setenv("XDG_CONFIG_HOME", "/home/ada/.config")
	t.Setenv("KICAD_CONFIG_HOME", "/opt/kicad-config")

	roots := func(ss []Strategy) []string {
		var out []string
		for _, s := range ss {
			out = append(out, s.Name+"="+s.Root())
		}
		return out
	}

	assert.Equal(t, []string{"override=/home/ada/kicad"}, roots(DefaultStrategies("~/kicad", "linux")))
	assert.Equal(t, []string{
		"KICAD_CONFIG_HOME=/opt/kicad-config",
		"platform=/home/ada/.config/kicad",
		"flatpak=/home/ada/.var/app/org.kicad.KiCad/config/kicad",
	}, roots(DefaultStrategies("", "linux")))
	assert.Equal(t, []string{
		"KICAD_CONFIG_HOME=/opt/kicad-config",
		"platform=/home/ada/Library/Preferences/kicad",
		"flatpak=",
	}, roots(DefaultStrategies("", "darwin")))
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want []int
		ok   bool
	}{
		{"8.0", []int{8, 0}, true},
		{"10.0.1", []int{10, 0, 1}, true},
		{"9", []int{9}, true},
		{"scripting", nil, false},
		{"8.", nil, false},
		{"8.0-rc1", nil, false},
	}

	for _, tt := range tests {
		got, ok := parseVersion(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.Equal(t, 1, compareVersions([]int{10, 0}, []int{9, 0}))
	assert.Equal(t, 0, compareVersions([]int{8}, []int{8, 0}))
	assert.Equal(t, -1, compareVersions([]int{8, 0}, []int{8, 0, 1}))
}
