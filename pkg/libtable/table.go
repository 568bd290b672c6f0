package libtable

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
)

const defaultLead = "\n  "

// Item is one top-level block of a table. Entry is nil for opaque blocks
// (version directives, unknown records, degraded lib records).
type Item struct {
	// Lead is the source text between the previous block and this one
	Lead string
	// Raw is the block's exact source text
	Raw   string
	Entry *types.LibraryEntry

	dirty bool
	// duplicate names the entry an opaque repeated lib record shadows
	duplicate string
}

// Table is a decoded library table
type Table struct {
	Kind   types.Kind
	Header string
	Items  []*Item
	// Tail is the text between the last block and the closing paren
	Tail string
	// Trailer runs from the closing paren to the end of the file
	Trailer string

	// Warnings lists records that were degraded to opaque passthrough
	Warnings []string
}

// Tag returns the outer list name for kind
func Tag(kind types.Kind) string {
	if kind == types.KindFootprint {
		return "fp_lib_table"
	}
	return "sym_lib_table"
}

// New returns an empty table with the default header
func New(kind types.Kind) *Table {
	return &Table{
		Kind:    kind,
		Header:  "(" + Tag(kind),
		Tail:    "\n",
		Trailer: ")\n",
	}
}

// Decode parses a library table of the given kind
func Decode(kind types.Kind, data []byte) (*Table, error) {
	logger := logging.GetLogger("libtable")

	if strings.TrimSpace(string(data)) == "" {
		return New(kind), nil
	}

	toks, err := tokenize(data)
	if err != nil {
		return nil, err
	}

	tag := Tag(kind)
	if toks[0].typ != tokLParen {
		return nil, errors.Newf(errors.ErrMalformedTable, "missing outer (%s ...) list", tag)
	}
	if len(toks) < 2 || toks[1].typ != tokAtom || toks[1].val != tag {
		return nil, errors.Newf(errors.ErrMalformedTable, "expected (%s ...) at line %d", tag, lineOf(data, toks[0].start))
	}

	t := &Table{
		Kind:   kind,
		Header: string(data[:toks[1].end]),
	}
	seen := make(map[string]bool)
	prevEnd := toks[1].end

	i := 2
	for {
		if i >= len(toks) {
			return nil, errors.Newf(errors.ErrMalformedTable, "unbalanced parentheses: (%s opened at line %d is never closed",
				tag, lineOf(data, toks[0].start))
		}

		tok := toks[i]
		switch tok.typ {
		case tokRParen:
			if err := checkTrailer(data, toks[i+1:]); err != nil {
				return nil, err
			}
			t.Tail = string(data[prevEnd:tok.start])
			t.Trailer = string(data[tok.start:])
			logger.Debug().
				Str("kind", string(kind)).
				Int("items", len(t.Items)).
				Int("warnings", len(t.Warnings)).
				Msg("Decoded library table")
			return t, nil

		case tokLParen:
			end, ok := matchParen(toks, i)
			if !ok {
				return nil, errors.Newf(errors.ErrMalformedTable, "unbalanced parentheses in block at line %d",
					lineOf(data, tok.start))
			}
			n, _ := buildNode(toks, i)
			item := &Item{
				Lead: string(data[prevEnd:tok.start]),
				Raw:  string(data[tok.start:toks[end].end]),
			}
			if n.head() == "lib" {
				entry, reason := entryFromNode(kind, n)
				switch {
				case reason != "":
					t.warn(fmt.Sprintf("line %d: %s; kept as-is", lineOf(data, tok.start), reason))
				case seen[entry.Name]:
					t.warn(fmt.Sprintf("line %d: duplicate library %q; kept as-is", lineOf(data, tok.start), entry.Name))
					item.duplicate = entry.Name
				default:
					seen[entry.Name] = true
					item.Entry = entry
				}
			}
			t.Items = append(t.Items, item)
			prevEnd = toks[end].end
			i = end + 1

		default:
			// stray atoms between blocks stay in the next block's Lead
			i++
		}
	}
}

func (t *Table) warn(msg string) {
	logger := logging.GetLogger("libtable")
	logger.Warn().Str("kind", string(t.Kind)).Msg(msg)
	t.Warnings = append(t.Warnings, msg)
}

// checkTrailer rejects stray closing parens after the table
func checkTrailer(data []byte, rest []token) error {
	depth := 0
	for _, tok := range rest {
		switch tok.typ {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth < 0 {
				return errors.Newf(errors.ErrMalformedTable, "unbalanced parentheses: unexpected ) at line %d", lineOf(data, tok.start))
			}
		}
	}
	if depth != 0 {
		return errors.New(errors.ErrMalformedTable, "unbalanced parentheses after end of table")
	}
	return nil
}

// matchParen returns the index of the token closing the list opened at i
func matchParen(toks []token, i int) (int, bool) {
	depth := 0
	for j := i; j < len(toks); j++ {
		switch toks[j].typ {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}

type node struct {
	list     bool
	value    string
	children []node
}

func (n node) head() string {
	if !n.list || len(n.children) == 0 || n.children[0].list {
		return ""
	}
	return n.children[0].value
}

// buildNode builds the tree rooted at toks[i], which must be balanced
func buildNode(toks []token, i int) (node, int) {
	tok := toks[i]
	if tok.typ != tokLParen {
		return node{value: tok.val}, i + 1
	}
	n := node{list: true}
	i++
	for i < len(toks) && toks[i].typ != tokRParen {
		var child node
		child, i = buildNode(toks, i)
		n.children = append(n.children, child)
	}
	return n, i + 1
}

// entryFromNode converts a (lib ...) node. A non-empty reason means the
// record is not a usable entry.
func entryFromNode(kind types.Kind, n node) (*types.LibraryEntry, string) {
	entry := &types.LibraryEntry{Kind: kind}
	var hasName, hasURI bool

	for _, field := range n.children[1:] {
		key := field.head()
		if key == "" {
			return nil, "lib record has a field that is not a (key value) pair"
		}
		var opt types.Option
		switch len(field.children) {
		case 1:
			opt = types.Option{Key: key, Flag: true}
		case 2:
			if field.children[1].list {
				return nil, fmt.Sprintf("lib field %q has a nested value", key)
			}
			opt = types.Option{Key: key, Value: field.children[1].value}
		default:
			return nil, fmt.Sprintf("lib field %q has more than one value", key)
		}

		switch key {
		case "name":
			if hasName || opt.Flag {
				return nil, "lib record has an invalid name field"
			}
			hasName = true
			entry.Name = opt.Value
		case "uri":
			if hasURI || opt.Flag {
				return nil, "lib record has an invalid uri field"
			}
			hasURI = true
			entry.URI = opt.Value
		default:
			entry.Options = append(entry.Options, opt)
		}
	}

	if entry.Name == "" {
		return nil, "lib record has no name"
	}
	return entry, ""
}

// Encode renders the table
func (t *Table) Encode() []byte {
	var sb strings.Builder
	sb.WriteString(t.Header)
	for _, item := range t.Items {
		sb.WriteString(item.Lead)
		if item.dirty && item.Entry != nil {
			sb.WriteString(renderEntry(*item.Entry))
		} else {
			sb.WriteString(item.Raw)
		}
	}
	sb.WriteString(t.Tail)
	sb.WriteString(t.Trailer)
	return []byte(sb.String())
}

// renderEntry writes a lib record in the fixed field order KiCad uses
func renderEntry(e types.LibraryEntry) string {
	var sb strings.Builder
	sb.WriteString("(lib ")
	field := func(key, value string) {
		sb.WriteString("(" + key + " " + quote(value) + ")")
	}

	value := func(key, def string) string {
		if v, ok := e.Option(key); ok {
			return v
		}
		return def
	}

	field("name", e.Name)
	field("type", value("type", "KiCad"))
	field("uri", e.URI)
	field("options", value("options", ""))
	field("descr", value("descr", ""))
	for _, opt := range e.Options {
		switch opt.Key {
		case "type", "options", "descr":
			continue
		}
		if opt.Flag {
			sb.WriteString("(" + opt.Key + ")")
			continue
		}
		field(opt.Key, opt.Value)
	}
	sb.WriteString(")")
	return sb.String()
}
