package libtable

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/kilm/pkg/errors"
)

type tokenType int

const (
	tokLParen tokenType = iota
	tokRParen
	tokAtom
	tokString
)

type token struct {
	typ   tokenType
	val   string
	start int
	end   int
}

// tokenize splits data into parens, bare atoms and quoted strings.
// Whitespace is not kept; callers slice data by offset to recover it.
func tokenize(data []byte) ([]token, error) {
	var toks []token
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case isSpace(c):
			i++
		case c == '(':
			toks = append(toks, token{typ: tokLParen, start: i, end: i + 1})
			i++
		case c == ')':
			toks = append(toks, token{typ: tokRParen, start: i, end: i + 1})
			i++
		case c == '"':
			val, end, err := scanString(data, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{typ: tokString, val: val, start: i, end: end})
			i = end
		default:
			start := i
			for i < len(data) && !isSpace(data[i]) && data[i] != '(' && data[i] != ')' && data[i] != '"' {
				i++
			}
			toks = append(toks, token{typ: tokAtom, val: string(data[start:i]), start: start, end: i})
		}
	}
	return toks, nil
}

// scanString reads the quoted string starting at data[start] and returns
// its unescaped value and the offset just past the closing quote
func scanString(data []byte, start int) (string, int, error) {
	var sb strings.Builder
	i := start + 1
	for i < len(data) {
		c := data[i]
		switch c {
		case '"':
			return sb.String(), i + 1, nil
		case '\\':
			if i+1 >= len(data) {
				i++
				continue
			}
			switch next := data[i+1]; next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(next)
			}
			i += 2
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return "", 0, errors.Newf(errors.ErrMalformedTable, "unterminated string starting at line %d", lineOf(data, start)).
		WithDetail("line", lineOf(data, start))
}

// quote renders s as a KiCad quoted string
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func lineOf(data []byte, offset int) int {
	if offset > len(data) {
		offset = len(data)
	}
	return bytes.Count(data[:offset], []byte{'\n'}) + 1
}
