// Package config loads kilm's configuration.
//
// Layers, lowest priority first: the embedded defaults.toml, the user
// config file (TOML or YAML), KILM_* environment variables, then explicit
// overrides from command-line flags. The result is a plain *Config value
// that callers pass down explicitly.
package config
