package convention

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// shape is everything the rule table needs to know about a name.
type shape struct {
	segments   int  // underscore-delimited segments
	underscore bool // at least one '_'
	segsLower  bool // every segment matches [a-z][a-z0-9]*
	segsUpper  bool // every segment matches [A-Z][A-Z0-9]*
	alnum      bool // only letters and digits
	firstUpper bool
	firstLower bool
	hasUpper   bool
	hasLower   bool
}

type rule struct {
	name  string
	match func(s shape) bool
	tag   Tag
}

// rules is checked top to bottom; the first match wins.
var rules = []rule{
	{"snake", func(s shape) bool { return s.segments >= 2 && s.segsLower }, SnakeCase},
	{"screaming", func(s shape) bool { return s.segments >= 2 && s.segsUpper }, ScreamingSnake},
	{"pascal", func(s shape) bool { return !s.underscore && s.alnum && s.firstUpper && s.hasLower }, PascalCase},
	{"camel", func(s shape) bool { return !s.underscore && s.alnum && s.firstLower && s.hasUpper }, CamelCase},
	// одно слово: "count" совпадает и со snake, и с camel
	{"single-lower", func(s shape) bool { return !s.underscore && s.segsLower }, SnakeCase},
	{"single-upper", func(s shape) bool { return !s.underscore && s.segsUpper }, ScreamingSnake},
}

// casers are not safe for concurrent use.
var lowerPool = sync.Pool{
	New: func() any { c := cases.Lower(language.Und); return &c },
}

// Classify returns the convention of name and its lowercase word sequence.
// It is pure: the same name always yields the same result.
// Unrecognized names still get a best-effort word split, but callers must
// not group them by it.
func Classify(name string) (Tag, Words) {
	tag, words, _ := Explain(name)
	return tag, words
}

// Explain is Classify plus the name of the rule that fired ("" when none did).
func Explain(name string) (Tag, Words, string) {
	segs := strings.Split(name, "_")
	sh := shapeOf(name, segs)
	for _, r := range rules {
		if r.match(sh) {
			return r.tag, split(segs), r.name
		}
	}
	return Unrecognized, split(segs), ""
}

func shapeOf(name string, segs []string) shape {
	sh := shape{
		segments:   len(segs),
		underscore: len(segs) > 1,
		segsLower:  true,
		segsUpper:  true,
		alnum:      true,
	}
	for i, r := range name {
		switch {
		case unicode.IsUpper(r):
			sh.hasUpper = true
			if i == 0 {
				sh.firstUpper = true
			}
		case unicode.IsLower(r):
			sh.hasLower = true
			if i == 0 {
				sh.firstLower = true
			}
		case unicode.IsDigit(r), r == '_':
		default:
			// caseless letters (e.g. CJK) and anything else
			sh.alnum = false
		}
	}
	for _, seg := range segs {
		if !segmentIs(seg, unicode.IsLower) {
			sh.segsLower = false
		}
		if !segmentIs(seg, unicode.IsUpper) {
			sh.segsUpper = false
		}
	}
	return sh
}

// segmentIs reports whether seg is one letter of the given case followed by
// letters of that case or digits.
func segmentIs(seg string, isCase func(rune) bool) bool {
	if seg == "" {
		return false
	}
	for i, r := range seg {
		if i == 0 && !isCase(r) {
			return false
		}
		if !isCase(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func split(segs []string) Words {
	lower := lowerPool.Get().(*cases.Caser)
	defer lowerPool.Put(lower)

	words := make(Words, 0, len(segs))
	for _, seg := range segs {
		for _, w := range splitCase(seg) {
			words = append(words, lower.String(w))
		}
	}
	return words
}

// splitCase cuts one underscore-free segment on case boundaries:
//   - lower or digit followed by upper starts a word (employeeCount, v2Beta)
//   - in an upper run followed by lower, the last upper starts the word (HTTPServer → HTTP Server)
//
// Digits never start a word on their own.
func splitCase(seg string) []string {
	if seg == "" {
		return nil
	}
	rs := []rune(seg)
	var out []string
	start := 0
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		switch {
		case unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			out = append(out, string(rs[start:i]))
			start = i
		case unicode.IsLower(cur) && unicode.IsUpper(prev) && i-1 > start:
			out = append(out, string(rs[start:i-1]))
			start = i - 1
		}
	}
	return append(out, string(rs[start:]))
}
