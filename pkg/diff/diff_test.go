package diff

import (
	"strings"
	"testing"

	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func sym(name string) types.Identity {
	return types.Identity{Kind: types.KindSymbol, Name: name}
}

func TestRenderGolden(t *testing.T) {
	tests := []struct {
		name string
		cs   *types.ChangeSet
	}{
		{
			name: "libraries",
			cs: &types.ChangeSet{
				Additions: []types.LibraryEntry{
					{Name: "C", Kind: types.KindSymbol, URI: "/c.kicad_sym", Pinned: true},
					{Name: "Pads", Kind: types.KindFootprint, URI: "/libs/Pads.pretty"},
				},
				Removals: []types.Identity{{Kind: types.KindFootprint, Name: "Old"}},
				URIUpdates: []types.URIUpdate{
					{Identity: sym("B"), From: "/b.kicad_sym", To: "/moved/b.kicad_sym"},
				},
				PinChanges: []types.PinChange{
					{Identity: sym("A"), Pinned: true},
					{Identity: sym("B"), Pinned: false},
				},
				EnvChanges: []types.EnvChange{
					{Name: "KICAD_USER_LIB", From: "/old", To: "/libs", Existed: true},
					{Name: "KICAD_3D_LIB", To: "/libs/3d"},
				},
			},
		},
		{
			name: "block_added",
			cs:   &types.ChangeSet{ManagedBlockReplacement: strPtr("kilm update\necho done\n")},
		},
		{
			name: "block_updated",
			cs: &types.ChangeSet{
				ManagedBlockReplacement: strPtr("echo two\nkilm update\n"),
				PreviousManagedBlock:    strPtr("echo one\nkilm update\n"),
			},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := strings.Join(Render(tt.cs), "\n") + "\n"
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	assert.Nil(t, Render(nil))
	assert.Nil(t, Render(&types.ChangeSet{}))
}

func TestRenderIsDeterministic(t *testing.T) {
	cs := &types.ChangeSet{
		Additions:               []types.LibraryEntry{{Name: "C", Kind: types.KindSymbol, URI: "/c"}},
		ManagedBlockReplacement: strPtr("x\n"),
	}
	assert.Equal(t, Render(cs), Render(cs))
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		cs   *types.ChangeSet
		want string
	}{
		{"empty", &types.ChangeSet{}, "no changes"},
		{"one addition", &types.ChangeSet{Additions: []types.LibraryEntry{{Name: "C"}}}, "1 addition"},
		{
			"mixed",
			&types.ChangeSet{
				Additions:               []types.LibraryEntry{{Name: "C"}, {Name: "D"}},
				PinChanges:              []types.PinChange{{Identity: sym("A"), Pinned: true}},
				ManagedBlockReplacement: strPtr("x"),
			},
			"2 additions, 1 pin change, managed block",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.cs))
		})
	}
}
