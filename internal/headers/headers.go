// Package headers recognizes the section header tokens of a house-style advert.
package headers

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrAmbiguousHeader is returned when one header name is a prefix of another,
// so a single line could match both.
var ErrAmbiguousHeader = errors.New("ambiguous header names")

// ErrEmptyHeader is returned for a blank header name.
var ErrEmptyHeader = errors.New("empty header name")

// defaultNames is the section header set used by the house style.
var defaultNames = []string{
	"Job Title",
	"Location",
	"Department",
	"Reports To",
	"Employment Type",
	"About Us",
	"About the Role",
	"Essential Duties and Responsibilities",
	"Education and Experience",
	"Knowledge, Skills and Abilities",
	"Benefits",
	"How to Apply",
}

// DefaultNames returns a copy of the house-style header names.
func DefaultNames() []string {
	names := make([]string, len(defaultNames))
	copy(names, defaultNames)
	return names
}

// Match is the result of a successful header match.
type Match struct {
	// Header is the canonical header, always ending with a colon.
	Header string
	// Trailing is the same-line content after the header, without the
	// separating colon or leading whitespace. Empty when the line held only
	// the header.
	Trailing string
}

// Set is an immutable, ordered set of section headers.
type Set struct {
	names []string
}

// NewSet builds a header set from header names. A trailing colon on a name is
// ignored. Names are compared case-insensitively and none may be a prefix of
// another.
func NewSet(names ...string) (*Set, error) {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), ":"))
		if name == "" {
			return nil, ErrEmptyHeader
		}
		for _, existing := range cleaned {
			if hasPrefixFold(existing, name) || hasPrefixFold(name, existing) {
				return nil, fmt.Errorf("%w: %q and %q", ErrAmbiguousHeader, existing, name)
			}
		}
		cleaned = append(cleaned, name)
	}
	return &Set{names: cleaned}, nil
}

// DefaultSet returns the house-style header set.
func DefaultSet() *Set {
	set, err := NewSet(defaultNames...)
	if err != nil {
		panic(fmt.Sprintf("headers: invalid default set: %v", err))
	}
	return set
}

// Names returns the canonical headers in order, each ending with a colon.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	for i, name := range s.names {
		out[i] = name + ":"
	}
	return out
}

// Len returns the number of headers in the set.
func (s *Set) Len() int {
	return len(s.names)
}

// Match reports whether the trimmed line starts with one of the headers,
// compared case-insensitively. "Location:" and "Location" are aliases.
//
// The prefix test is bounded: a header matches only when it is followed by a
// colon, whitespace or the end of the line, so it never matches inside a
// longer word ("Locations", "Benefitsplus"). Trailing holds the text after
// the header and its optional colon.
func (s *Set) Match(line string) (Match, bool) {
	if s == nil {
		return Match{}, false
	}
	trimmed := strings.TrimSpace(line)
	for _, name := range s.names {
		if !hasPrefixFold(trimmed, name) {
			continue
		}
		rest := trimmed[len(name):]
		if rest != "" && rest[0] != ':' && !unicode.IsSpace(rune(rest[0])) {
			continue
		}
		rest = strings.TrimPrefix(rest, ":")
		return Match{
			Header:   name + ":",
			Trailing: strings.TrimLeftFunc(rest, unicode.IsSpace),
		}, true
	}
	return Match{}, false
}

// hasPrefixFold is a case-insensitive strings.HasPrefix.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
