package locator

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/kicadcommon"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/paths"
	"github.com/arthur-debert/kilm/pkg/types"
)

// Profile is a located KiCad configuration directory
type Profile struct {
	Dir string
	// Version is the version directory name, empty when the root holds
	// the tables directly
	Version string
	// Strategy names how the profile was found
	Strategy string
}

// TablePath returns the library table file of kind
func (p Profile) TablePath(kind types.Kind) string {
	return filepath.Join(p.Dir, kind.TableFile())
}

// SettingsPath returns kicad_common.json
func (p Profile) SettingsPath() string {
	return filepath.Join(p.Dir, kicadcommon.FileName)
}

// Strategy proposes a candidate root. Root returns "" when the strategy
// does not apply.
type Strategy struct {
	Name string
	Root func() string
}

// Override is the strategy for an explicitly configured directory
func Override(dir string) Strategy {
	return Strategy{Name: "override", Root: func() string { return paths.ExpandHome(dir) }}
}

// EnvHome is the strategy for KiCad's KICAD_CONFIG_HOME variable
func EnvHome() Strategy {
	return Strategy{Name: paths.EnvKiCadConfigHome, Root: func() string {
		return paths.ExpandHome(os.Getenv(paths.EnvKiCadConfigHome))
	}}
}

// Platform is the strategy for the OS-conventional roots
func Platform(goos string) []Strategy {
	var out []Strategy
	for _, root := range paths.KiCadRoots(goos) {
		root := root
		out = append(out, Strategy{Name: "platform", Root: func() string { return root }})
	}
	return out
}

// Flatpak is the strategy for the Flathub KiCad sandbox
func Flatpak(goos string) Strategy {
	return Strategy{Name: "flatpak", Root: func() string { return paths.FlatpakRoot(goos) }}
}

// DefaultStrategies returns the search order. An explicit override is the
// only strategy when set.
func DefaultStrategies(override, goos string) []Strategy {
	if override != "" {
		return []Strategy{Override(override)}
	}
	strategies := []Strategy{EnvHome()}
	strategies = append(strategies, Platform(goos)...)
	return append(strategies, Flatpak(goos))
}

// FindProfile returns the first qualifying profile
func FindProfile(fsys types.FS, strategies []Strategy) (*Profile, error) {
	logger := logging.GetLogger("locator")
	var searched []string

	for _, s := range strategies {
		root := s.Root()
		if root == "" {
			continue
		}
		searched = append(searched, root)

		dir, version, ok := resolveRoot(fsys, root)
		logger.Debug().Str("strategy", s.Name).Str("root", root).Bool("found", ok).Msg("Tried KiCad config root")
		if ok {
			return &Profile{Dir: dir, Version: version, Strategy: s.Name}, nil
		}
	}

	return nil, errors.Newf(errors.ErrConfigNotFound,
		"no KiCad configuration found (searched: %s); run KiCad once so it creates its library tables",
		strings.Join(searched, ", ")).
		WithDetail("searched", searched)
}

// resolveRoot picks the newest version directory holding a table, or the
// root itself
func resolveRoot(fsys types.FS, root string) (string, string, bool) {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return "", "", false
	}

	type candidate struct {
		name    string
		version []int
	}
	var versions []candidate
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if v, ok := parseVersion(e.Name()); ok {
			versions = append(versions, candidate{name: e.Name(), version: v})
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i].version, versions[j].version) > 0
	})

	for _, c := range versions {
		dir := filepath.Join(root, c.name)
		if hasTable(fsys, dir) {
			return dir, c.name, true
		}
	}
	if hasTable(fsys, root) {
		return root, "", true
	}
	return "", "", false
}

func hasTable(fsys types.FS, dir string) bool {
	for _, kind := range types.Kinds {
		if info, err := fsys.Stat(filepath.Join(dir, kind.TableFile())); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// parseVersion accepts dotted numeric names such as 8.0 or 10.0.1
func parseVersion(name string) ([]int, bool) {
	parts := strings.Split(name, ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func compareVersions(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
