// Package parse tokenizes raw compound option strings. A compound option
// string is the value of a flag like --disk, e.g. "path=foo,size=5", and
// is split on commas with shell quoting rules so that quoted values may
// themselves contain commas.
package parse

import (
	"errors"
	"strings"
)

// Tuple is a single name/value pair from a compound option string.
// HasValue distinguishes "name" (no '=' seen, no value at all) from
// "name=" (explicit empty value, an intentional unset signal).
type Tuple struct {
	Name     string
	Value    string
	HasValue bool
}

// ErrUnterminatedQuote is returned when a quoted section is not closed.
var ErrUnterminatedQuote = errors.New("unterminated quoted string")

// OptionTuples splits a raw option string into an ordered list of tuples.
// "path=foo,size=5,path=bar" becomes
//
//	[{path foo} {size 5} {path bar}]
//
// Commas act as delimiters unless quoted; single quotes, double quotes
// and backslash escapes follow POSIX shell-word rules. Empty fields
// produced by consecutive delimiters are dropped. The split on the first
// '=' happens after dequoting, so "path='a=b'" yields name "path" and
// value "a=b".
func OptionTuples(optstr string) ([]Tuple, error) {
	words, err := splitCommaWords(optstr)
	if err != nil {
		return nil, err
	}

	tuples := make([]Tuple, 0, len(words))
	for _, w := range words {
		if w.text == "" && !w.quoted {
			continue
		}
		name, value, found := strings.Cut(w.text, "=")
		tuples = append(tuples, Tuple{
			Name:     name,
			Value:    value,
			HasValue: found,
		})
	}

	return tuples, nil
}

type word struct {
	text   string
	quoted bool
}

// splitCommaWords scans the input rune by rune. It mirrors a POSIX-mode
// shell lexer whose only delimiter is the comma: backslash escapes the
// next rune, single quotes are literal until the closing quote, and
// inside double quotes a backslash only escapes '"' and '\'.
func splitCommaWords(s string) ([]word, error) {
	var (
		words   []word
		sb      strings.Builder
		quoted  bool
		started bool
	)

	flush := func() {
		if started {
			words = append(words, word{text: sb.String(), quoted: quoted})
		}
		sb.Reset()
		quoted = false
		started = false
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case ',':
			flush()
		case '\\':
			if i+1 >= len(runes) {
				return nil, ErrUnterminatedQuote
			}
			i++
			sb.WriteRune(runes[i])
			started = true
		case '\'', '"':
			closing, n, err := scanQuoted(runes[i+1:], r)
			if err != nil {
				return nil, err
			}
			sb.WriteString(closing)
			// n already counts the closing quote; the loop's own
			// increment moves past it onto the next delimiter.
			i += n
			quoted = true
			started = true
		default:
			sb.WriteRune(r)
			started = true
		}
	}
	flush()

	return words, nil
}

// scanQuoted consumes runes up to the closing quote and returns the
// unescaped content plus the number of runes consumed including the
// closing quote itself.
func scanQuoted(runes []rune, quote rune) (string, int, error) {
	var sb strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == quote {
			return sb.String(), i + 1, nil
		}
		if quote == '"' && r == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			if next == '"' || next == '\\' {
				sb.WriteRune(next)
				i++
				continue
			}
		}
		sb.WriteRune(r)
	}

	return "", 0, ErrUnterminatedQuote
}
