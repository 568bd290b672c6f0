package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"symbol", KindSymbol},
		{"Symbols", KindSymbol},
		{" sym ", KindSymbol},
		{"footprint", KindFootprint},
		{"FP", KindFootprint},
		{"footprints", KindFootprint},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("3d")
	assert.Error(t, err)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "sym-lib-table", KindSymbol.TableFile())
	assert.Equal(t, "fp-lib-table", KindFootprint.TableFile())
	assert.Equal(t, "symbol library", KindSymbol.Label())
	assert.Equal(t, "footprint library", KindFootprint.Label())
	assert.Equal(t, "symbol:Power", Identity{Kind: KindSymbol, Name: "Power"}.String())
}

func TestLibraryEntry(t *testing.T) {
	e := LibraryEntry{
		Name: "Power",
		Kind: KindSymbol,
		URI:  "/p.kicad_sym",
		Options: []Option{
			{Key: "type", Value: "KiCad"},
			{Key: "descr", Value: "Power symbols"},
			{Key: "disabled", Flag: true},
		},
	}

	assert.Equal(t, "Power symbols", e.Description())
	v, ok := e.Option("type")
	assert.True(t, ok)
	assert.Equal(t, "KiCad", v)
	_, ok = e.Option("hidden")
	assert.False(t, ok)

	c := e.Clone()
	c.Options[0].Value = "Legacy"
	v, _ = e.Option("type")
	assert.Equal(t, "KiCad", v)
}

func TestChangeSetTouches(t *testing.T) {
	var nilSet *ChangeSet
	assert.True(t, nilSet.IsEmpty())
	assert.False(t, nilSet.TouchesTable(KindSymbol))
	assert.False(t, nilSet.TouchesSettings())
	assert.False(t, nilSet.TouchesHook())

	block := "kilm update\n"
	tests := []struct {
		name     string
		cs       ChangeSet
		symbol   bool
		fp       bool
		settings bool
		hook     bool
	}{
		{name: "empty"},
		{
			name:   "symbol addition",
			cs:     ChangeSet{Additions: []LibraryEntry{{Name: "A", Kind: KindSymbol}}},
			symbol: true,
		},
		{
			name:     "pinned addition",
			cs:       ChangeSet{Additions: []LibraryEntry{{Name: "A", Kind: KindFootprint, Pinned: true}}},
			fp:       true,
			settings: true,
		},
		{
			name: "footprint removal",
			cs:   ChangeSet{Removals: []Identity{{Kind: KindFootprint, Name: "B"}}},
			fp:   true,
		},
		{
			name:   "uri update",
			cs:     ChangeSet{URIUpdates: []URIUpdate{{Identity: Identity{Kind: KindSymbol, Name: "C"}, From: "/a", To: "/b"}}},
			symbol: true,
		},
		{
			name:     "pin change",
			cs:       ChangeSet{PinChanges: []PinChange{{Identity: Identity{Kind: KindSymbol, Name: "D"}, Pinned: true}}},
			settings: true,
		},
		{
			name:     "env change",
			cs:       ChangeSet{EnvChanges: []EnvChange{{Name: "LIB", To: "/libs"}}},
			settings: true,
		},
		{
			name: "managed block",
			cs:   ChangeSet{ManagedBlockReplacement: &block},
			hook: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := tt.cs
			assert.Equal(t, tt.name == "empty", cs.IsEmpty())
			assert.Equal(t, tt.symbol, cs.TouchesTable(KindSymbol))
			assert.Equal(t, tt.fp, cs.TouchesTable(KindFootprint))
			assert.Equal(t, tt.settings, cs.TouchesSettings())
			assert.Equal(t, tt.hook, cs.TouchesHook())
		})
	}
}

func TestDesiredStateIsZero(t *testing.T) {
	assert.True(t, DesiredState{}.IsZero())

	text := ""
	assert.False(t, DesiredState{HookBlockText: &text}.IsZero())
	assert.False(t, DesiredState{EnvVars: []EnvVar{{Name: "A", Value: "1"}}}.IsZero())
	assert.False(t, DesiredState{RemoveEntries: []Identity{{Kind: KindSymbol, Name: "A"}}}.IsZero())
}
