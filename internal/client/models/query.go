package models

import (
	"regexp"
	"strings"
)

type CourseScope int

const (
	CourseSelected CourseScope = iota
	CourseEnrolled
)

type WordScope int

const (
	WordPartial WordScope = iota
	WordFull
)

type CaseScope int

const (
	CaseIgnore CaseScope = iota
	CaseMatch
)

// SearchQuery describes one page content search. It is a value type and is
// not changed once the search starts.
type SearchQuery struct {
	Term        string
	CourseScope CourseScope
	WordScope   WordScope
	CaseScope   CaseScope
}

// RE2's \b only knows ASCII word characters. Whole-word matches treat any
// Unicode letter, digit or underscore as part of a word.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

// Pattern compiles the query: the term is matched literally, wrapped in word
// boundaries for whole-word scope, and case-insensitively unless the case
// scope asks for an exact match. The pattern is for MatchString only; with
// whole-word scope the match may include the neighbouring separators.
func (q SearchQuery) Pattern() (*regexp.Regexp, error) {
	expr := regexp.QuoteMeta(strings.TrimSpace(q.Term))
	if q.WordScope == WordFull {
		expr = wordStart + expr + wordEnd
	}
	if q.CaseScope == CaseIgnore {
		expr = `(?i)` + expr
	}
	return regexp.Compile(expr)
}
