// Package ui renders command results for the terminal, as plain text or as
// JSON.
//
// The same diff lines are printed for a dry run and a real run; the
// terminal renderer only adds color. Status reports are built as markdown
// and rendered with glamour on terminals.
package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/charmbracelet/glamour"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	RenderReport(r *Report) error
	RenderStatus(s *Status) error
	RenderMessage(msg string) error
	RenderError(err error) error
}

// NewRenderer creates a renderer for format writing to w
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(w), w)
	case FormatTerminal:
		return &textRenderer{w: w, styled: true}, nil
	case FormatText:
		return &textRenderer{w: w}, nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return &jsonRenderer{enc: enc}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

type textRenderer struct {
	w      io.Writer
	styled bool
}

func (r *textRenderer) style(s interface{ Render(...string) string }, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *textRenderer) println(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.w, format+"\n", args...)
	return err
}

func (r *textRenderer) RenderReport(rep *Report) error {
	heading := rep.Target
	if rep.DryRun {
		heading += " (dry run)"
	}
	if err := r.println("%s", r.style(HeaderStyle, heading)); err != nil {
		return err
	}

	if len(rep.Changes) == 0 {
		if err := r.println("  Nothing to do, already up to date"); err != nil {
			return err
		}
	}
	for _, line := range rep.Changes {
		if r.styled {
			line = StyleDiffLine(line)
		}
		if err := r.println("  %s", line); err != nil {
			return err
		}
	}

	for _, w := range rep.Written {
		msg := "wrote " + w.Path
		if w.Backup != "" {
			msg += " (backup " + w.Backup + ")"
		}
		if err := r.println("%s", r.style(MutedStyle, msg)); err != nil {
			return err
		}
	}
	for _, p := range rep.Pruned {
		if err := r.println("%s", r.style(MutedStyle, "removed old backup "+p)); err != nil {
			return err
		}
	}
	for _, w := range rep.Warnings {
		if err := r.println("%s %s", r.style(WarningStyle, "warning:"), w); err != nil {
			return err
		}
	}
	for _, n := range rep.Notes {
		if err := r.println("%s", n); err != nil {
			return err
		}
	}
	if rep.Summary != "" && len(rep.Changes) > 0 {
		summary := rep.Summary
		if rep.DryRun {
			summary = "would apply: " + summary
		}
		return r.println("%s", summary)
	}
	return nil
}

func (r *textRenderer) RenderStatus(s *Status) error {
	md := s.Markdown()
	if r.styled {
		md = renderMarkdown(md)
	}
	_, err := io.WriteString(r.w, md)
	return err
}

func (r *textRenderer) RenderMessage(msg string) error {
	return r.println("%s", msg)
}

func (r *textRenderer) RenderError(err error) error {
	return r.println("%s %s", r.style(ErrorStyle, "error:"), err.Error())
}

// renderMarkdown falls back to the markdown source if glamour fails
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

type jsonRenderer struct {
	enc *json.Encoder
}

func (r *jsonRenderer) RenderReport(rep *Report) error {
	if rep.Changes == nil {
		rep.Changes = []string{}
	}
	return r.enc.Encode(rep)
}

func (r *jsonRenderer) RenderStatus(s *Status) error {
	return r.enc.Encode(s)
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.enc.Encode(map[string]string{"message": msg})
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.enc.Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetErrorCode(err),
	})
}
