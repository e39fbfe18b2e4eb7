package store

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Pattern is a log file path that may contain strftime-like date
// specifiers. Supported specifiers are %Y %y %m %d %H %M, and %% for a
// literal percent. The specifiers are supported in the file name part of
// the path, not in the directories.
type Pattern struct {
	pattern   string
	fragments []fragment
}

// fragment is one piece of a parsed pattern. kind is the specifier letter,
// or 0 for the literal stored in text.
type fragment struct {
	kind byte
	text string
}

func (f fragment) len() int {
	switch f.kind {
	case 0:
		return len(f.text)
	case 'Y':
		return 4
	default:
		return 2
	}
}

func (f fragment) build(t time.Time) string {
	switch f.kind {
	case 'Y':
		return t.Format("2006")
	case 'y':
		return t.Format("06")
	case 'm':
		return t.Format("01")
	case 'd':
		return t.Format("02")
	case 'H':
		return t.Format("15")
	case 'M':
		return t.Format("04")
	default:
		return f.text
	}
}

// match reports whether s can be the output of this fragment for some time
// between since and until. Only the year is checked against the period;
// the smaller units just have to be plausible numbers, because the scanner
// filters by the record times anyway and a too-wide file list only costs a
// little extra reading.
func (f fragment) match(s string, since, until time.Time) bool {
	if f.kind == 0 {
		return f.text == s
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return false
	}

	switch f.kind {
	case 'Y':
		return since.Year() <= n && n <= until.Year()
	case 'y':
		return since.Year() <= n+2000 && n+2000 <= until.Year()
	case 'm':
		return 1 <= n && n <= 12
	case 'd':
		return 1 <= n && n <= 31
	default:
		return n <= 59
	}
}

// ParsePattern parses a path string as a Pattern.
func ParsePattern(s string) Pattern {
	p := Pattern{pattern: s}

	var literal strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i+1 >= len(s) {
			literal.WriteByte(s[i])
			continue
		}

		i++
		switch s[i] {
		case 'Y', 'y', 'm', 'd', 'H', 'M':
			if literal.Len() > 0 {
				p.fragments = append(p.fragments, fragment{text: literal.String()})
				literal.Reset()
			}
			p.fragments = append(p.fragments, fragment{kind: s[i]})
		case '%':
			literal.WriteByte('%')
		default:
			literal.WriteByte('%')
			literal.WriteByte(s[i])
		}
	}
	if literal.Len() > 0 {
		p.fragments = append(p.fragments, fragment{text: literal.String()})
	}

	return p
}

func (p Pattern) String() string {
	return p.pattern
}

func (p Pattern) IsEmpty() bool {
	return p.pattern == ""
}

// hasDateFragments reports whether the pattern changes over time at all.
func (p Pattern) hasDateFragments() bool {
	for _, f := range p.fragments {
		if f.kind != 0 {
			return true
		}
	}
	return false
}

// Build makes the concrete file path for the time.
func (p Pattern) Build(t time.Time) string {
	ss := make([]string, len(p.fragments))
	for i, f := range p.fragments {
		ss[i] = f.build(t)
	}
	return strings.Join(ss, "")
}

// Match reports whether the file name can belong to the period between
// since and until.
func (p Pattern) Match(s string, since, until time.Time) bool {
	left := 0
	for _, f := range p.fragments {
		right := left + f.len()
		if len(s) < right {
			return false
		}
		if !f.match(s[left:right], since, until) {
			return false
		}
		left = right
	}
	return left == len(s)
}

// ListBetween lists the existing log files that can hold records of the
// period, in name order.
func (p Pattern) ListBetween(since, until time.Time) []string {
	if !p.hasDateFragments() {
		return []string{p.pattern}
	}

	dir := filepath.Dir(p.pattern)
	base := ParsePattern(filepath.Base(p.pattern))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && base.Match(e.Name(), since, until) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	return paths
}
