package desired

import (
	"fmt"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/types"
	"gopkg.in/yaml.v3"
)

// Declaration is the YAML form of a desired state:
//
//	ensure:
//	  - {kind: symbol, name: Parts, uri: "${KICAD_USER_LIB}/symbols/Parts.kicad_sym", pinned: true}
//	remove:
//	  - {kind: footprint, name: Old}
//	pin:
//	  - {kind: symbol, name: Device}
//	env:
//	  KICAD_USER_LIB: /home/me/kicad-libs
//	hook: |
//	  kilm update
type Declaration struct {
	Ensure []EnsureSpec `yaml:"ensure"`
	Remove []Ref        `yaml:"remove"`
	Pin    []PinSpec    `yaml:"pin"`
	Env    EnvList      `yaml:"env"`
	Hook   *string      `yaml:"hook"`
}

// Ref names a library
type Ref struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
}

// EnsureSpec is a library that must be configured
type EnsureSpec struct {
	Ref     `yaml:",inline"`
	URI     string `yaml:"uri"`
	Type    string `yaml:"type"`
	Options string `yaml:"options"`
	Descr   string `yaml:"descr"`
	Pinned  *bool  `yaml:"pinned"`
}

// PinSpec sets the pinned flag of a library; Pinned defaults to true
type PinSpec struct {
	Ref    `yaml:",inline"`
	Pinned *bool `yaml:"pinned"`
}

// EnvList keeps path variables in file order. It accepts a mapping or a
// list of {name, value} items.
type EnvList []types.EnvVar

// UnmarshalYAML implements yaml.Unmarshaler
func (l *EnvList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			var value string
			if err := node.Content[i+1].Decode(&value); err != nil {
				return err
			}
			*l = append(*l, types.EnvVar{Name: node.Content[i].Value, Value: value})
		}
		return nil
	case yaml.SequenceNode:
		var items []struct {
			Name  string `yaml:"name"`
			Value string `yaml:"value"`
		}
		if err := node.Decode(&items); err != nil {
			return err
		}
		for _, it := range items {
			*l = append(*l, types.EnvVar{Name: it.Name, Value: it.Value})
		}
		return nil
	default:
		if node.Tag == "!!null" {
			return nil
		}
		return fmt.Errorf("line %d: env must be a mapping or a list", node.Line)
	}
}

// LoadDeclaration reads and converts a declaration file
func LoadDeclaration(fsys types.FS, path string) (types.DesiredState, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return types.DesiredState{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
			WithDetail("path", path)
	}
	state, err := ParseDeclaration(data)
	if err != nil {
		var kerr *errors.KilmError
		if errors.As(err, &kerr) {
			return state, kerr.WithDetail("path", path)
		}
		return state, err
	}
	return state, nil
}

// ParseDeclaration converts declaration YAML into a DesiredState
func ParseDeclaration(data []byte) (types.DesiredState, error) {
	var decl Declaration
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return types.DesiredState{}, errors.Wrap(err, errors.ErrInvalidInput, "invalid declaration")
	}
	return decl.State()
}

// State validates the declaration and returns it as a DesiredState
func (d Declaration) State() (types.DesiredState, error) {
	var state types.DesiredState

	for i, spec := range d.Ensure {
		id, err := spec.identity()
		if err != nil {
			return state, errors.Wrapf(err, errors.ErrInvalidInput, "ensure[%d]", i)
		}
		if spec.URI == "" {
			return state, errors.Newf(errors.ErrInvalidInput, "ensure[%d]: %s has no uri", i, id)
		}
		entry := NewEntry(id.Kind, id.Name, spec.URI, spec.Descr)
		if spec.Type != "" {
			entry.Options[0].Value = spec.Type
		}
		entry.Options[1].Value = spec.Options
		state.EnsureEntries = append(state.EnsureEntries, entry)
		if spec.Pinned != nil {
			state.PinSet = append(state.PinSet, types.PinChange{Identity: id, Pinned: *spec.Pinned})
		}
	}

	for i, ref := range d.Remove {
		id, err := ref.identity()
		if err != nil {
			return state, errors.Wrapf(err, errors.ErrInvalidInput, "remove[%d]", i)
		}
		state.RemoveEntries = append(state.RemoveEntries, id)
	}

	for i, spec := range d.Pin {
		id, err := spec.identity()
		if err != nil {
			return state, errors.Wrapf(err, errors.ErrInvalidInput, "pin[%d]", i)
		}
		pinned := spec.Pinned == nil || *spec.Pinned
		state.PinSet = append(state.PinSet, types.PinChange{Identity: id, Pinned: pinned})
	}

	for _, v := range d.Env {
		if v.Name == "" {
			return state, errors.New(errors.ErrInvalidInput, "env: variable name cannot be empty")
		}
		state.EnvVars = append(state.EnvVars, v)
	}

	state.HookBlockText = d.Hook
	return state, nil
}

func (r Ref) identity() (types.Identity, error) {
	if r.Name == "" {
		return types.Identity{}, errors.New(errors.ErrInvalidInput, "library name cannot be empty")
	}
	kind, err := types.ParseKind(r.Kind)
	if err != nil {
		return types.Identity{}, err
	}
	return types.Identity{Kind: kind, Name: r.Name}, nil
}
