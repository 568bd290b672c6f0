// Package merge computes the minimal ChangeSet that brings KiCad's
// library tables, pinned libraries, path variables and a hook's managed
// block in line with a desired state.
//
// Planning is additive and targeted: entries the desired state does not
// mention are never touched, removals happen only on request, and
// planning against the result of a previous identical plan yields an
// empty ChangeSet. The planner never mutates its inputs.
package merge

import (
	"fmt"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/hookdoc"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
)

// Current is the decoded state of a KiCad profile. Entries carry their
// pinned flag from kicad_common.json.
type Current struct {
	Entries []types.LibraryEntry
	EnvVars []types.EnvVar
}

// Plan is a computed ChangeSet plus the non-fatal problems found on the way
type Plan struct {
	ChangeSet *types.ChangeSet
	Warnings  []string
}

func (p *Plan) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger := logging.GetLogger("merge")
	logger.Warn().Msg(msg)
	p.Warnings = append(p.Warnings, msg)
}

// PlanLibraries plans table, pin and path variable changes
func PlanLibraries(current Current, desired types.DesiredState) (*Plan, error) {
	logger := logging.GetLogger("merge")
	if err := validate(desired); err != nil {
		return nil, err
	}

	plan := &Plan{ChangeSet: &types.ChangeSet{}}
	cs := plan.ChangeSet

	existing := make(map[types.Identity]types.LibraryEntry, len(current.Entries))
	for _, e := range current.Entries {
		existing[e.Identity()] = e
	}

	removed := make(map[types.Identity]bool)
	for _, id := range desired.RemoveEntries {
		if removed[id] {
			continue
		}
		if _, ok := existing[id]; !ok {
			logger.Info().Str("library", id.String()).Msg("Library to remove is not configured, nothing to do")
			continue
		}
		removed[id] = true
		cs.Removals = append(cs.Removals, id)
	}

	added := make(map[types.Identity]int)
	for _, want := range desired.EnsureEntries {
		id := want.Identity()
		have, ok := existing[id]
		if !ok {
			added[id] = len(cs.Additions)
			cs.Additions = append(cs.Additions, want.Clone())
			continue
		}
		if have.URI != want.URI {
			logger.Info().
				Str("library", id.String()).
				Str("from", have.URI).
				Str("to", want.URI).
				Msg("Library location differs, updating uri and keeping pin")
			cs.URIUpdates = append(cs.URIUpdates, types.URIUpdate{Identity: id, From: have.URI, To: want.URI})
		}
	}

	// later requests for the same library win
	var pinOrder []types.Identity
	finalPin := make(map[types.Identity]bool)
	for _, pin := range desired.PinSet {
		if _, ok := finalPin[pin.Identity]; !ok {
			pinOrder = append(pinOrder, pin.Identity)
		}
		finalPin[pin.Identity] = pin.Pinned
	}
	for _, id := range pinOrder {
		pinned := finalPin[id]
		if i, ok := added[id]; ok {
			cs.Additions[i].Pinned = pinned
			continue
		}
		have, ok := existing[id]
		if !ok {
			plan.warn("cannot %s %s: library is not configured", pinVerb(pinned), id)
			continue
		}
		if removed[id] {
			plan.warn("cannot %s %s: library is being removed", pinVerb(pinned), id)
			continue
		}
		if have.Pinned != pinned {
			cs.PinChanges = append(cs.PinChanges, types.PinChange{Identity: id, Pinned: pinned})
		}
	}

	currentEnv := make(map[string]string, len(current.EnvVars))
	for _, v := range current.EnvVars {
		currentEnv[v.Name] = v.Value
	}
	envIndex := make(map[string]int)
	for _, v := range desired.EnvVars {
		if i, ok := envIndex[v.Name]; ok {
			cs.EnvChanges[i].To = v.Value
			continue
		}
		from, existed := currentEnv[v.Name]
		if existed && from == v.Value {
			continue
		}
		envIndex[v.Name] = len(cs.EnvChanges)
		cs.EnvChanges = append(cs.EnvChanges, types.EnvChange{Name: v.Name, From: from, To: v.Value, Existed: existed})
	}

	// a repeated variable may have come back to its current value
	kept := cs.EnvChanges[:0]
	for _, c := range cs.EnvChanges {
		if c.Existed && c.From == c.To {
			continue
		}
		kept = append(kept, c)
	}
	cs.EnvChanges = kept

	logger.Debug().
		Int("additions", len(cs.Additions)).
		Int("removals", len(cs.Removals)).
		Int("uri_updates", len(cs.URIUpdates)).
		Int("pin_changes", len(cs.PinChanges)).
		Int("env_changes", len(cs.EnvChanges)).
		Msg("Planned library changes")
	return plan, nil
}

// validate rejects requests that name the same library twice
func validate(desired types.DesiredState) error {
	seen := make(map[types.Identity]bool, len(desired.EnsureEntries))
	for _, e := range desired.EnsureEntries {
		id := e.Identity()
		if seen[id] {
			return errors.Newf(errors.ErrDuplicateDesiredEntry, "library %s is listed more than once", id).
				WithDetail("library", id.String())
		}
		seen[id] = true
	}
	for _, id := range desired.RemoveEntries {
		if seen[id] {
			return errors.Newf(errors.ErrDuplicateDesiredEntry, "library %s is both ensured and removed", id).
				WithDetail("library", id.String())
		}
	}
	return nil
}

func pinVerb(pinned bool) string {
	if pinned {
		return "pin"
	}
	return "unpin"
}

// PlanHook plans the managed block of a hook. doc is nil when the hook
// file does not exist yet; text nil means the hook is left alone.
func PlanHook(doc *hookdoc.Document, text *string) *types.ChangeSet {
	cs := &types.ChangeSet{}
	if text == nil {
		return cs
	}

	want := hookdoc.NormalizeBlock(*text)
	if doc != nil {
		if have, ok := doc.ManagedBlock(); ok {
			if hookdoc.NormalizeBlock(have) == want {
				return cs
			}
			prev := have
			cs.PreviousManagedBlock = &prev
		}
	}
	cs.ManagedBlockReplacement = &want
	return cs
}

// Project returns the state that applying cs to current produces
func Project(current Current, cs *types.ChangeSet) Current {
	out := Current{}
	if cs == nil {
		cs = &types.ChangeSet{}
	}

	removed := make(map[types.Identity]bool)
	for _, id := range cs.Removals {
		removed[id] = true
	}
	uris := make(map[types.Identity]string)
	for _, u := range cs.URIUpdates {
		uris[u.Identity] = u.To
	}
	pins := make(map[types.Identity]bool)
	for _, p := range cs.PinChanges {
		pins[p.Identity] = p.Pinned
	}

	for _, e := range current.Entries {
		id := e.Identity()
		if removed[id] {
			continue
		}
		e = e.Clone()
		if uri, ok := uris[id]; ok {
			e.URI = uri
		}
		if pinned, ok := pins[id]; ok {
			e.Pinned = pinned
		}
		out.Entries = append(out.Entries, e)
	}
	for _, a := range cs.Additions {
		out.Entries = append(out.Entries, a.Clone())
	}

	env := make(map[string]string)
	for _, c := range cs.EnvChanges {
		env[c.Name] = c.To
	}
	for _, v := range current.EnvVars {
		if to, ok := env[v.Name]; ok {
			v.Value = to
			delete(env, v.Name)
		}
		out.EnvVars = append(out.EnvVars, v)
	}
	for _, c := range cs.EnvChanges {
		if _, ok := env[c.Name]; ok {
			out.EnvVars = append(out.EnvVars, types.EnvVar{Name: c.Name, Value: c.To})
			delete(env, c.Name)
		}
	}
	return out
}
