package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.KiCad.ConfigDir)
	assert.Equal(t, "post-merge", cfg.Hook.Name)
	assert.Equal(t, "#!/bin/sh", cfg.Hook.Interpreter)
	assert.Contains(t, cfg.Hook.Block, "kilm update")
	assert.True(t, strings.HasSuffix(cfg.Hook.Block, "\n"))
	assert.True(t, cfg.Setup.Pin)
	assert.Equal(t, "KICAD_USER_LIB", cfg.Setup.EnvVar)
	assert.Equal(t, "KICAD_3D_LIB", cfg.Setup.ThreeDEnvVar)
	assert.Equal(t, 5, cfg.Backups.Max)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		env      map[string]string
		opts     func(dir string) LoadOptions
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults when no user file",
			opts: func(dir string) LoadOptions { return LoadOptions{ConfigDir: dir} },
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5, cfg.Backups.Max)
			},
		},
		{
			name: "toml user file",
			files: map[string]string{
				"config.toml": "[backups]\nmax = 9\n[kicad]\nconfig_dir = \"/opt/kicad/9.0\"\n",
			},
			opts: func(dir string) LoadOptions { return LoadOptions{ConfigDir: dir} },
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9, cfg.Backups.Max)
				assert.Equal(t, "/opt/kicad/9.0", cfg.KiCad.ConfigDir)
				assert.Equal(t, "post-merge", cfg.Hook.Name)
			},
		},
		{
			name: "yaml user file",
			files: map[string]string{
				"config.yaml": "setup:\n  pin: false\n  library_dir: /libs\n",
			},
			opts: func(dir string) LoadOptions { return LoadOptions{ConfigDir: dir} },
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Setup.Pin)
				assert.Equal(t, "/libs", cfg.Setup.LibraryDir)
			},
		},
		{
			name: "env overrides file",
			files: map[string]string{
				"config.toml": "[backups]\nmax = 9\n",
			},
			env: map[string]string{
				"KILM_BACKUPS_MAX":      "2",
				"KILM_KICAD_CONFIG_DIR": "/env/kicad",
			},
			opts: func(dir string) LoadOptions { return LoadOptions{ConfigDir: dir} },
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Backups.Max)
				assert.Equal(t, "/env/kicad", cfg.KiCad.ConfigDir)
			},
		},
		{
			name: "flag overrides win",
			env:  map[string]string{"KILM_BACKUPS_MAX": "2"},
			opts: func(dir string) LoadOptions {
				return LoadOptions{ConfigDir: dir, Overrides: map[string]interface{}{"backups.max": 1}}
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1, cfg.Backups.Max)
			},
		},
		{
			name: "explicit file",
			files: map[string]string{
				"custom.toml": "[hook]\nname = \"post-checkout\"\n",
			},
			opts: func(dir string) LoadOptions { return LoadOptions{File: filepath.Join(dir, "custom.toml")} },
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "post-checkout", cfg.Hook.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(tt.opts(dir))
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(LoadOptions{File: filepath.Join(dir, "nope.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("unparseable file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[backups\nmax = "), 0644))
		_, err := Load(LoadOptions{File: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("invalid hook name", func(t *testing.T) {
		_, err := Load(LoadOptions{Overrides: map[string]interface{}{"hook.name": "../evil"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("negative backups", func(t *testing.T) {
		_, err := Load(LoadOptions{Overrides: map[string]interface{}{"backups.max": -1}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestConfigTOML(t *testing.T) {
	out, err := Default().TOML()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "[backups]")
	assert.Contains(t, s, "max = 5")
	assert.Contains(t, s, "post-merge")
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[backups]")
	assert.Contains(t, content, "# max = 5")
	assert.Contains(t, content, `# echo "Running KiCad Library Manager update..."`)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}
}
