package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

// Config is the effective kilm configuration
type Config struct {
	KiCad   KiCad   `koanf:"kicad" toml:"kicad"`
	Hook    Hook    `koanf:"hook" toml:"hook"`
	Setup   Setup   `koanf:"setup" toml:"setup"`
	Backups Backups `koanf:"backups" toml:"backups"`
}

// KiCad locates the KiCad profile
type KiCad struct {
	ConfigDir string `koanf:"config_dir" toml:"config_dir"`
}

// Hook describes the managed git hook
type Hook struct {
	Name        string `koanf:"name" toml:"name"`
	Interpreter string `koanf:"interpreter" toml:"interpreter"`
	Block       string `koanf:"block" toml:"block,multiline"`
}

// Setup holds defaults for kilm setup
type Setup struct {
	LibraryDir   string `koanf:"library_dir" toml:"library_dir"`
	Pin          bool   `koanf:"pin" toml:"pin"`
	EnvVar       string `koanf:"env_var" toml:"env_var"`
	ThreeDEnvVar string `koanf:"threed_env_var" toml:"threed_env_var"`
	ThreeDDir    string `koanf:"threed_dir" toml:"threed_dir"`
}

// Backups controls retention of artifact snapshots
type Backups struct {
	Max int `koanf:"max" toml:"max"`
}

// TOML renders the effective configuration
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
