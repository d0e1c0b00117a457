package diagfmt

import (
	"convdup/internal/group"
	"convdup/internal/source"
)

// LocationJSON is a span in machine-readable output. Line and column
// fields are present only when positions were requested.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), base)
}

func makeLocation(span source.Span, fs *source.FileSet, mode PathMode, withPositions bool) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs.Get(span.File), fs, mode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if withPositions {
		start, end := fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// visible filters groups down to the ones worth reporting. Nested groups
// are filtered the same way.
func visible(groups []group.Group, all bool) []group.Group {
	out := make([]group.Group, 0, len(groups))
	for _, g := range groups {
		g.Nested = visible(g.Nested, all)
		if all || g.Actionable || len(g.Nested) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// flatten lists every group with nested ones following their parent.
func flatten(groups []group.Group) []group.Group {
	var out []group.Group
	for i := range groups {
		out = append(out, groups[i])
		out = append(out, flatten(groups[i].Nested)...)
	}
	return out
}
