// Package paths provides centralized path handling for kilm.
//
// It covers two concerns:
//
//   - kilm's own directories (config and state), following the XDG Base
//     Directory specification through adrg/xdg, with KILM_CONFIG_DIR and
//     KILM_STATE_DIR overrides.
//   - the platform-conventional roots under which KiCad keeps its
//     per-version configuration profiles.
//
// # Environment Variables
//
//   - KILM_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/kilm)
//   - KILM_STATE_DIR: Override the state directory (default: $XDG_STATE_HOME/kilm)
//   - KICAD_CONFIG_HOME: KiCad's own override of its configuration root
//
// # Usage
//
//	p := paths.New()
//	cfg := p.ConfigFilePath()             // ~/.config/kilm/config.toml
//	roots := paths.KiCadRoots(runtime.GOOS) // ~/.config/kicad, flatpak root
package paths
