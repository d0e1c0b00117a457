package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"convdup/internal/source"
)

// shortEntry is one rendered line: "<severity> <code> <path>:<line>:<col> <message>".
type shortEntry struct {
	severity string
	code     string
	path     string
	pos      source.LineCol
	message  string
}

func (e shortEntry) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", e.severity, e.code, e.path, e.pos.Line, e.pos.Col, e.message)
}

func compareShort(a, b shortEntry) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.pos.Line, b.pos.Line),
		cmp.Compare(a.pos.Col, b.pos.Col),
		cmp.Compare(a.severity, b.severity),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.message, b.message),
	)
}

// FormatShortDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set), ordered by location. Paths are relative to the
// FileSet base directory. Spans pointing outside fs are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var entries []shortEntry
	add := func(sev, code string, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(sp)
		entries = append(entries, shortEntry{
			severity: sev,
			code:     code,
			path:     trimDotSlash(fs.Get(sp.File).FormatPath("relative", fs.BaseDir())),
			pos:      start,
			message:  oneLine(msg),
		})
	}
	for i := range diags {
		d := &diags[i]
		add(strings.ToLower(d.Severity.String()), d.Code.ID(), d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code.ID(), n.Span, n.Msg)
			}
		}
	}
	slices.SortStableFunc(entries, compareShort)

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// oneLine replaces line breaks in msg with spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(lineBreaks.Replace(msg))
}

func trimDotSlash(p string) string {
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
