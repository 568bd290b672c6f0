package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/kilm/pkg/types"
)

// LibraryBuilder lays out a library directory declaratively
type LibraryBuilder struct {
	t    *testing.T
	fs   types.FS
	root string
}

// NewLibrary starts a library directory at root
func NewLibrary(t *testing.T, fsys types.FS, root string) *LibraryBuilder {
	t.Helper()
	CreateDir(t, fsys, root)
	return &LibraryBuilder{t: t, fs: fsys, root: root}
}

// Symbols adds symbols/<name>.kicad_sym files
func (b *LibraryBuilder) Symbols(names ...string) *LibraryBuilder {
	b.t.Helper()
	for _, name := range names {
		CreateFile(b.t, b.fs, filepath.Join(b.root, "symbols", name+".kicad_sym"), "(kicad_symbol_lib)\n")
	}
	return b
}

// Footprints adds footprints/<name>.pretty folders
func (b *LibraryBuilder) Footprints(names ...string) *LibraryBuilder {
	b.t.Helper()
	for _, name := range names {
		CreateDir(b.t, b.fs, filepath.Join(b.root, "footprints", name+".pretty"))
	}
	return b
}

// File adds an arbitrary file relative to the library root
func (b *LibraryBuilder) File(rel, content string) *LibraryBuilder {
	b.t.Helper()
	CreateFile(b.t, b.fs, filepath.Join(b.root, rel), content)
	return b
}

// Root returns the library directory
func (b *LibraryBuilder) Root() string {
	return b.root
}

// Table renders a library table holding one row per entry. Entries are
// name/uri pairs; every row gets type KiCad and empty options.
func Table(kind types.Kind, pairs ...string) string {
	header := "sym_lib_table"
	if kind == types.KindFootprint {
		header = "fp_lib_table"
	}
	var sb strings.Builder
	sb.WriteString("(" + header + "\n")
	for i := 0; i+1 < len(pairs); i += 2 {
		sb.WriteString(`  (lib (name "` + pairs[i] + `")(type "KiCad")(uri "` + pairs[i+1] + `")(options "")(descr ""))` + "\n")
	}
	sb.WriteString(")\n")
	return sb.String()
}
