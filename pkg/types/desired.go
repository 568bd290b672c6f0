package types

// EnvVar is a KiCad path variable (Preferences > Configure Paths)
type EnvVar struct {
	Name  string
	Value string
}

// DesiredState is what the command layer asks the engine to ensure.
// Entries not mentioned are left untouched.
type DesiredState struct {
	EnsureEntries []LibraryEntry
	RemoveEntries []Identity
	PinSet        []PinChange
	EnvVars       []EnvVar

	// HookBlockText is the managed block body; nil leaves hooks alone
	HookBlockText *string
}

// IsZero reports whether the desired state asks for nothing
func (d DesiredState) IsZero() bool {
	return len(d.EnsureEntries) == 0 &&
		len(d.RemoveEntries) == 0 &&
		len(d.PinSet) == 0 &&
		len(d.EnvVars) == 0 &&
		d.HookBlockText == nil
}
