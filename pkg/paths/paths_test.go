package paths

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		envSetup   map[string]string
		wantConfig string
		wantState  string
	}{
		{
			name: "xdg directories",
			envSetup: map[string]string{
				"XDG_CONFIG_HOME": "/xdg/config",
				"XDG_STATE_HOME":  "/xdg/state",
			},
			wantConfig: "/xdg/config/kilm",
			wantState:  "/xdg/state/kilm",
		},
		{
			name: "explicit overrides win",
			envSetup: map[string]string{
				"XDG_CONFIG_HOME": "/xdg/config",
				EnvKilmConfigDir:  "/custom/config",
				EnvKilmStateDir:   "/custom/state",
			},
			wantConfig: "/custom/config",
			wantState:  "/custom/state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKilmConfigDir, "")
			t.Setenv(EnvKilmStateDir, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p := New()
			assert.Equal(t, tt.wantConfig, p.ConfigDir())
			assert.Equal(t, tt.wantState, p.StateDir())
			assert.Equal(t, filepath.Join(tt.wantConfig, ConfigFileName), p.ConfigFilePath())
			assert.Equal(t, filepath.Join(tt.wantState, LogFileName), p.LogFilePath())
		})
	}
}

func TestKiCadRoots(t *testing.T) {
	t.Setenv("HOME", "/home/ada")
	t.Setenv("XDG_CONFIG_HOME", "/home/ada/.config")
	t.Setenv("APPDATA", `C:\Users\ada\AppData\Roaming`)

	tests := []struct {
		goos string
		want []string
	}{
		{"linux", []string{"/home/ada/.config/kicad"}},
		{"darwin", []string{"/home/ada/Library/Preferences/kicad"}},
		{"windows", []string{filepath.Join(`C:\Users\ada\AppData\Roaming`, "kicad")}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, KiCadRoots(tt.goos))
		})
	}
}

func TestFlatpakRoot(t *testing.T) {
	t.Setenv("HOME", "/home/ada")

	assert.Equal(t, "/home/ada/.var/app/org.kicad.KiCad/config/kicad", FlatpakRoot("linux"))
	assert.Empty(t, FlatpakRoot("darwin"))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/ada")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/ada"},
		{"~/kicad-libs", "/home/ada/kicad-libs"},
		{"/abs/path", "/abs/path"},
		{"~bob/libs", "~bob/libs"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Setenv("HOME", "/home/ada")

	got, err := Normalize("~/libs/../libs/")
	require.NoError(t, err)
	assert.Equal(t, "/home/ada/libs", got)

	_, err = Normalize("  ")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
