// Package hookdoc reads and writes git hook scripts that contain a
// kilm-managed block.
//
// A hook is split into Literal segments, kept byte for byte, and at most
// one ManagedBlock delimited by BeginMarker and EndMarker lines.
package hookdoc

import (
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
)

const (
	BeginMarker = "# BEGIN KiLM-managed section"
	EndMarker   = "# END KiLM-managed section"

	// DefaultInterpreter starts hook files kilm creates
	DefaultInterpreter = "#!/bin/sh"
)

// SegmentKind tells literal text from the managed block
type SegmentKind int

const (
	Literal SegmentKind = iota
	ManagedBlock
)

func (k SegmentKind) String() string {
	if k == ManagedBlock {
		return "managed"
	}
	return "literal"
}

// Segment is a run of hook text. For a ManagedBlock, Text is the body
// between the marker lines and Raw is the full text including markers.
type Segment struct {
	Kind SegmentKind
	Text string
	Raw  string
}

// Document is a decoded hook script
type Document struct {
	Segments []Segment
}

// Decode splits a hook script into segments. More than one managed block,
// an unterminated block or a stray end marker is MalformedHook.
func Decode(data []byte) (*Document, error) {
	doc := &Document{}
	lines := strings.SplitAfter(string(data), "\n")

	var literal, raw, body strings.Builder
	inBlock := false
	blocks := 0
	beginLine := 0

	flushLiteral := func() {
		if literal.Len() > 0 {
			doc.Segments = append(doc.Segments, Segment{Kind: Literal, Text: literal.String(), Raw: literal.String()})
			literal.Reset()
		}
	}

	for n, line := range lines {
		if line == "" {
			continue
		}
		marker := strings.TrimSpace(line)

		switch {
		case marker == BeginMarker:
			if inBlock {
				return nil, errors.Newf(errors.ErrMalformedHook, "line %d: nested %q", n+1, BeginMarker)
			}
			if blocks > 0 {
				return nil, errors.Newf(errors.ErrMalformedHook, "line %d: more than one kilm-managed section", n+1)
			}
			flushLiteral()
			inBlock = true
			beginLine = n + 1
			raw.WriteString(line)

		case marker == EndMarker:
			if !inBlock {
				return nil, errors.Newf(errors.ErrMalformedHook, "line %d: %q without a matching begin marker", n+1, EndMarker)
			}
			raw.WriteString(line)
			doc.Segments = append(doc.Segments, Segment{Kind: ManagedBlock, Text: body.String(), Raw: raw.String()})
			raw.Reset()
			body.Reset()
			inBlock = false
			blocks++

		case inBlock:
			raw.WriteString(line)
			body.WriteString(line)

		default:
			literal.WriteString(line)
		}
	}

	if inBlock {
		return nil, errors.Newf(errors.ErrMalformedHook, "line %d: kilm-managed section is never closed", beginLine)
	}
	flushLiteral()
	return doc, nil
}

// NewDocument returns the document for a hook file that does not exist yet
func NewDocument(interpreter string) *Document {
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	return &Document{Segments: []Segment{{Kind: Literal, Text: interpreter + "\n", Raw: interpreter + "\n"}}}
}

// ManagedBlock returns the body of the managed block, if any
func (d *Document) ManagedBlock() (string, bool) {
	for _, s := range d.Segments {
		if s.Kind == ManagedBlock {
			return s.Text, true
		}
	}
	return "", false
}

// EnsureInterpreter puts an interpreter line in front of a script that
// does not start with one. It reports whether the document changed.
func (d *Document) EnsureInterpreter(interpreter string) bool {
	if len(d.Segments) > 0 && d.Segments[0].Kind == Literal && strings.HasPrefix(d.Segments[0].Raw, "#!") {
		return false
	}
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	line := interpreter + "\n"
	d.Segments = append([]Segment{{Kind: Literal, Text: line, Raw: line}}, d.Segments...)
	return true
}

// SetManagedBlock replaces the managed block body, or appends a new
// block after all existing content
func (d *Document) SetManagedBlock(text string) {
	text = NormalizeBlock(text)
	seg := Segment{Kind: ManagedBlock, Text: text, Raw: BeginMarker + "\n" + text + EndMarker + "\n"}

	for i, s := range d.Segments {
		if s.Kind == ManagedBlock {
			if NormalizeBlock(s.Text) == text {
				return
			}
			d.Segments[i] = seg
			return
		}
	}

	if n := len(d.Segments); n > 0 {
		last := d.Segments[n-1]
		sep := ""
		if !strings.HasSuffix(last.Raw, "\n") {
			sep = "\n"
		}
		if !strings.HasSuffix(last.Raw, "\n\n") {
			sep += "\n"
		}
		if sep != "" {
			d.Segments = append(d.Segments, Segment{Kind: Literal, Text: sep, Raw: sep})
		}
	}
	d.Segments = append(d.Segments, seg)
}

// Encode renders the document
func (d *Document) Encode() []byte {
	var sb strings.Builder
	for _, s := range d.Segments {
		sb.WriteString(s.Raw)
	}
	return []byte(sb.String())
}

// NormalizeBlock makes block text comparable with what Decode returns:
// marker lines are dropped and the text ends with a single newline
func NormalizeBlock(text string) string {
	lines := strings.SplitAfter(text, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if m := strings.TrimSpace(line); m == BeginMarker || m == EndMarker {
			continue
		}
		sb.WriteString(line)
	}
	out := strings.TrimRight(sb.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}
