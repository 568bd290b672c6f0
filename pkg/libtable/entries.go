package libtable

import (
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/types"
)

// Entries returns copies of the table's library entries in file order
func (t *Table) Entries() []types.LibraryEntry {
	var entries []types.LibraryEntry
	for _, item := range t.Items {
		if item.Entry != nil {
			entries = append(entries, item.Entry.Clone())
		}
	}
	return entries
}

func (t *Table) find(name string) *Item {
	for _, item := range t.Items {
		if item.Entry != nil && item.Entry.Name == name {
			return item
		}
	}
	return nil
}

// Add appends entry after every existing block
func (t *Table) Add(entry types.LibraryEntry) error {
	if entry.Kind != t.Kind {
		return errors.Newf(errors.ErrInvalidInput, "cannot add %s %q to the %s table", entry.Kind, entry.Name, t.Kind)
	}
	if t.find(entry.Name) != nil {
		return errors.Newf(errors.ErrInvalidInput, "library %q already exists", entry.Name)
	}

	lead := defaultLead
	for i := len(t.Items) - 1; i >= 0; i-- {
		if l := t.Items[i].Lead; strings.Contains(l, "\n") {
			lead = l[strings.LastIndex(l, "\n"):]
			break
		}
	}

	e := entry.Clone()
	e.Pinned = false
	t.Items = append(t.Items, &Item{Lead: lead, Entry: &e, dirty: true})
	if !strings.Contains(t.Tail, "\n") {
		t.Tail = "\n" + t.Tail
	}
	return nil
}

// Remove drops the named entry together with any repeated records of the
// same name. It reports whether anything was removed.
func (t *Table) Remove(name string) bool {
	kept := t.Items[:0]
	removed := false
	for _, item := range t.Items {
		if (item.Entry != nil && item.Entry.Name == name) || item.duplicate == name {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	t.Items = kept
	return removed
}

// SetURI changes the location of the named entry, leaving its other fields
// alone. It reports whether the entry exists.
func (t *Table) SetURI(name, uri string) bool {
	item := t.find(name)
	if item == nil {
		return false
	}
	if item.Entry.URI != uri {
		item.Entry.URI = uri
		item.dirty = true
	}
	return true
}

// Apply applies the part of cs that concerns this table: removals, uri
// updates, then additions in order
func (t *Table) Apply(cs *types.ChangeSet) error {
	if cs == nil {
		return nil
	}
	for _, id := range cs.Removals {
		if id.Kind == t.Kind {
			t.Remove(id.Name)
		}
	}
	for _, u := range cs.URIUpdates {
		if u.Kind == t.Kind && !t.SetURI(u.Name, u.To) {
			return errors.Newf(errors.ErrInvalidInput, "cannot update uri of missing library %q", u.Name)
		}
	}
	for _, a := range cs.Additions {
		if a.Kind != t.Kind {
			continue
		}
		if err := t.Add(a); err != nil {
			return err
		}
	}
	return nil
}
