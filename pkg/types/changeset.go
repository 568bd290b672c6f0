package types

// URIUpdate records an existing entry whose location changes
type URIUpdate struct {
	Identity
	From string
	To   string
}

// PinChange sets the pinned flag of an existing entry
type PinChange struct {
	Identity
	Pinned bool
}

// EnvChange sets a KiCad path variable
type EnvChange struct {
	Name    string
	From    string
	To      string
	Existed bool
}

// ChangeSet is the minimal difference between current and desired state.
// An empty ChangeSet means nothing is written.
type ChangeSet struct {
	Additions  []LibraryEntry
	Removals   []Identity
	URIUpdates []URIUpdate
	PinChanges []PinChange
	EnvChanges []EnvChange

	// ManagedBlockReplacement is the new managed block body for a hook,
	// nil when the hook is untouched.
	ManagedBlockReplacement *string

	// PreviousManagedBlock is the body being replaced, nil when the block
	// is being added.
	PreviousManagedBlock *string
}

// IsEmpty reports whether applying the ChangeSet would change nothing
func (c *ChangeSet) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.Additions) == 0 &&
		len(c.Removals) == 0 &&
		len(c.URIUpdates) == 0 &&
		len(c.PinChanges) == 0 &&
		len(c.EnvChanges) == 0 &&
		c.ManagedBlockReplacement == nil
}

// TouchesTable reports whether the library table of kind k must be rewritten
func (c *ChangeSet) TouchesTable(k Kind) bool {
	if c == nil {
		return false
	}
	for _, a := range c.Additions {
		if a.Kind == k {
			return true
		}
	}
	for _, r := range c.Removals {
		if r.Kind == k {
			return true
		}
	}
	for _, u := range c.URIUpdates {
		if u.Kind == k {
			return true
		}
	}
	return false
}

// TouchesSettings reports whether kicad_common.json must be rewritten.
// Additions that start pinned land there too.
func (c *ChangeSet) TouchesSettings() bool {
	if c == nil {
		return false
	}
	if len(c.PinChanges) > 0 || len(c.EnvChanges) > 0 {
		return true
	}
	for _, a := range c.Additions {
		if a.Pinned {
			return true
		}
	}
	return false
}

// TouchesHook reports whether the hook script must be rewritten
func (c *ChangeSet) TouchesHook() bool {
	return c != nil && c.ManagedBlockReplacement != nil
}
