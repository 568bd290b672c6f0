package desired

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/metadata"
	"github.com/arthur-debert/kilm/pkg/types"
)

// ListLibraries returns the symbol and footprint library names found in a
// library directory, sorted. Missing folders contribute nothing.
func ListLibraries(fsys types.FS, dir string) ([]string, []string, error) {
	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil, errors.Newf(errors.ErrNotFound, "library directory not found: %s", dir).
			WithDetail("path", dir)
	}

	symbols := scan(fsys, filepath.Join(dir, metadata.SymbolsDir), ".kicad_sym", false)
	footprints := scan(fsys, filepath.Join(dir, metadata.FootprintsDir), ".pretty", true)
	return symbols, footprints, nil
}

func scan(fsys types.FS, dir, ext string, wantDir bool) []string {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() != wantDir || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), ext); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
