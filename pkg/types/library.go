package types

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two KiCad library tables
type Kind string

const (
	// KindSymbol is a schematic symbol library (sym-lib-table)
	KindSymbol Kind = "symbol"

	// KindFootprint is a PCB footprint library (fp-lib-table)
	KindFootprint Kind = "footprint"
)

// Kinds lists every library kind in table processing order
var Kinds = []Kind{KindSymbol, KindFootprint}

// ParseKind accepts the spellings users and config files commonly use
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "symbol", "symbols", "sym":
		return KindSymbol, nil
	case "footprint", "footprints", "fp":
		return KindFootprint, nil
	default:
		return "", fmt.Errorf("unknown library kind %q (want symbol or footprint)", s)
	}
}

// Label returns a human readable name for the kind
func (k Kind) Label() string {
	switch k {
	case KindSymbol:
		return "symbol library"
	case KindFootprint:
		return "footprint library"
	default:
		return string(k) + " library"
	}
}

// TableFile returns the library table file name KiCad uses for the kind
func (k Kind) TableFile() string {
	if k == KindFootprint {
		return "fp-lib-table"
	}
	return "sym-lib-table"
}

// Identity uniquely identifies a library within the tables
type Identity struct {
	Kind Kind
	Name string
}

func (i Identity) String() string {
	return fmt.Sprintf("%s:%s", i.Kind, i.Name)
}

// Option is one record field other than name and uri. Flag options are
// bare markers such as (disabled) and carry no value.
type Option struct {
	Key   string
	Value string
	Flag  bool
}

// LibraryEntry is one library row of a table
type LibraryEntry struct {
	Name    string
	Kind    Kind
	URI     string
	Options []Option
	Pinned  bool
}

// Identity returns the (kind, name) pair for the entry
func (e LibraryEntry) Identity() Identity {
	return Identity{Kind: e.Kind, Name: e.Name}
}

// Option returns the value of the named option
func (e LibraryEntry) Option(key string) (string, bool) {
	for _, opt := range e.Options {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return "", false
}

// Description returns the descr field, or an empty string
func (e LibraryEntry) Description() string {
	v, _ := e.Option("descr")
	return v
}

// Clone returns a deep copy so callers can modify options freely
func (e LibraryEntry) Clone() LibraryEntry {
	c := e
	if e.Options != nil {
		c.Options = append([]Option(nil), e.Options...)
	}
	return c
}
