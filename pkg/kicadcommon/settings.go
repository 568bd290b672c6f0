package kicadcommon

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file inside a KiCad profile
const FileName = "kicad_common.json"

const (
	sessionKey     = "session"
	environmentKey = "environment"
	varsKey        = "vars"
)

// PinnedKey returns the session key holding pinned libraries of kind
func PinnedKey(kind types.Kind) string {
	if kind == types.KindFootprint {
		return "pinned_fp_libs"
	}
	return "pinned_symbol_libs"
}

// Settings is a decoded kicad_common.json
type Settings struct {
	root *yaml.Node
}

// New returns empty settings
func New() *Settings {
	return &Settings{root: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// Decode parses kicad_common.json. Empty input yields empty settings.
func Decode(data []byte) (*Settings, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedSettings, "kicad_common.json is not valid JSON")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrMalformedSettings, "kicad_common.json must contain a JSON object")
	}

	s := &Settings{root: doc.Content[0]}
	for _, kind := range types.Kinds {
		if n := s.lookup(sessionKey, PinnedKey(kind)); n != nil && !isNull(n) && n.Kind != yaml.SequenceNode {
			return nil, errors.Newf(errors.ErrMalformedSettings, "%s.%s must be a list", sessionKey, PinnedKey(kind))
		}
	}
	if n := s.lookup(environmentKey, varsKey); n != nil && !isNull(n) && n.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrMalformedSettings, "%s.%s must be an object", environmentKey, varsKey)
	}
	return s, nil
}

// Pinned returns the pinned library names of kind in file order
func (s *Settings) Pinned(kind types.Kind) []string {
	n := s.lookup(sessionKey, PinnedKey(kind))
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	var names []string
	for _, item := range n.Content {
		if item.Kind == yaml.ScalarNode {
			names = append(names, item.Value)
		}
	}
	return names
}

// IsPinned reports whether the library is pinned
func (s *Settings) IsPinned(id types.Identity) bool {
	for _, name := range s.Pinned(id.Kind) {
		if name == id.Name {
			return true
		}
	}
	return false
}

// SetPinned pins or unpins a library and reports whether anything changed
func (s *Settings) SetPinned(id types.Identity, pinned bool) bool {
	if s.IsPinned(id) == pinned {
		return false
	}

	list := s.ensure(yaml.SequenceNode, sessionKey, PinnedKey(id.Kind))
	if pinned {
		list.Content = append(list.Content, stringNode(id.Name))
		return true
	}

	kept := list.Content[:0]
	for _, item := range list.Content {
		if item.Kind == yaml.ScalarNode && item.Value == id.Name {
			continue
		}
		kept = append(kept, item)
	}
	list.Content = kept
	return true
}

// EnvVar returns a path variable
func (s *Settings) EnvVar(name string) (string, bool) {
	vars := s.lookup(environmentKey, varsKey)
	if vars == nil || vars.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(vars.Content); i += 2 {
		if vars.Content[i].Value == name {
			return vars.Content[i+1].Value, true
		}
	}
	return "", false
}

// EnvVars returns every path variable in file order
func (s *Settings) EnvVars() []types.EnvVar {
	vars := s.lookup(environmentKey, varsKey)
	if vars == nil || vars.Kind != yaml.MappingNode {
		return nil
	}
	var out []types.EnvVar
	for i := 0; i+1 < len(vars.Content); i += 2 {
		out = append(out, types.EnvVar{Name: vars.Content[i].Value, Value: vars.Content[i+1].Value})
	}
	return out
}

// SetEnvVar sets a path variable and reports whether anything changed
func (s *Settings) SetEnvVar(name, value string) bool {
	if current, ok := s.EnvVar(name); ok && current == value {
		return false
	}

	vars := s.ensure(yaml.MappingNode, environmentKey, varsKey)
	for i := 0; i+1 < len(vars.Content); i += 2 {
		if vars.Content[i].Value == name {
			vars.Content[i+1] = stringNode(value)
			return true
		}
	}
	vars.Content = append(vars.Content, stringNode(name), stringNode(value))
	return true
}

// Apply applies the part of cs that lives in kicad_common.json and
// reports whether the document changed
func (s *Settings) Apply(cs *types.ChangeSet) bool {
	if cs == nil {
		return false
	}
	changed := false
	for _, a := range cs.Additions {
		if a.Pinned && s.SetPinned(a.Identity(), true) {
			changed = true
		}
	}
	for _, p := range cs.PinChanges {
		if s.SetPinned(p.Identity, p.Pinned) {
			changed = true
		}
	}
	for _, e := range cs.EnvChanges {
		if s.SetEnvVar(e.Name, e.To) {
			changed = true
		}
	}
	return changed
}

// lookup walks nested object keys
func (s *Settings) lookup(keys ...string) *yaml.Node {
	n := s.root
	for _, key := range keys {
		if n == nil || n.Kind != yaml.MappingNode {
			return nil
		}
		n = child(n, key)
	}
	return n
}

// ensure walks nested object keys, creating objects on the way and a
// node of kind at the end. Null values are replaced.
func (s *Settings) ensure(kind yaml.Kind, keys ...string) *yaml.Node {
	n := s.root
	for i, key := range keys {
		want := yaml.MappingNode
		if i == len(keys)-1 {
			want = kind
		}
		next := child(n, key)
		if next == nil {
			next = &yaml.Node{}
			n.Content = append(n.Content, stringNode(key), next)
		}
		if next.Kind != want {
			*next = *emptyNode(want)
		}
		n = next
	}
	return n
}

func child(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func emptyNode(kind yaml.Kind) *yaml.Node {
	if kind == yaml.SequenceNode {
		return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	}
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func stringNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// Encode renders the settings as 2-space indented JSON, the layout KiCad
// itself writes
func (s *Settings) Encode() []byte {
	var sb strings.Builder
	writeNode(&sb, s.root, 0)
	sb.WriteString("\n")
	return []byte(sb.String())
}

func writeNode(sb *strings.Builder, n *yaml.Node, depth int) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			writeNode(sb, n.Content[0], depth)
		}
	case yaml.AliasNode:
		writeNode(sb, n.Alias, depth)
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			indent(sb, depth+1)
			writeString(sb, n.Content[i].Value)
			sb.WriteString(": ")
			writeNode(sb, n.Content[i+1], depth+1)
			if i+2 < len(n.Content) {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		indent(sb, depth)
		sb.WriteString("}")
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i, item := range n.Content {
			indent(sb, depth+1)
			writeNode(sb, item, depth+1)
			if i+1 < len(n.Content) {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		indent(sb, depth)
		sb.WriteString("]")
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			sb.WriteString("null")
		case "!!bool", "!!int", "!!float":
			sb.WriteString(n.Value)
		default:
			writeString(sb, n.Value)
		}
	default:
		sb.WriteString("null")
	}
}

func writeString(sb *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	sb.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}
