package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"convdup/internal/diag"
	"convdup/internal/driver"
	"convdup/internal/group"
	"convdup/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	path, kind, name, tag *color.Color
	dim, bold             *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:  mk(color.FgRed, color.Bold),
		warn: mk(color.FgYellow, color.Bold),
		info: mk(color.FgBlue, color.Bold),
		note: mk(color.FgCyan),
		path: mk(color.Bold),
		kind: mk(color.FgMagenta),
		name: mk(color.FgCyan),
		tag:  mk(color.FgYellow),
		dim:  mk(color.Faint),
		bold: mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if !locatable(d, fs) {
			fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), d.Code.ID(), d.Message)
			continue
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprint(position(d.Primary, fs, opts.PathMode)),
			pal.severity(d.Severity).Sprint(d.Severity),
			d.Code.ID(),
			d.Message)
		writeSnippet(w, d.Primary, fs, int(opts.Context), pal)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), position(n.Span, fs, opts.PathMode), n.Msg)
			}
		}
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "%s\n", pal.dim.Sprintf("... %d more diagnostic(s) not shown", n))
	}
}

// locatable reports whether d points into a real file of fs.
// Сводные диагностики (timings) не привязаны к файлу.
func locatable(d diag.Diagnostic, fs *source.FileSet) bool {
	return d.Code != diag.ObsTimings && int(d.Primary.File) < fs.Len()
}

func position(span source.Span, fs *source.FileSet, mode PathMode) string {
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs.Get(span.File), fs, mode), start.Line, start.Col)
}

func writeSnippet(w io.Writer, span source.Span, fs *source.FileSet, ctxLines int, pal palette) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	if len(file.Content) == 0 {
		return
	}
	gutter := len(fmt.Sprint(start.Line))
	first := max(int(start.Line)-max(ctxLines, 0), 1)
	for line := uint32(first); line <= start.Line; line++ {
		fmt.Fprintf(w, " %s %s %s\n", pal.dim.Sprintf("%*d", gutter, line), pal.dim.Sprint("|"), file.Line(line))
	}

	text := file.Line(start.Line)
	col := min(max(int(start.Col)-1, 0), len(text))
	stop := len(text)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(text))
	}
	width := max(runewidth.StringWidth(text[col:stop]), 1)
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", gutter), pal.dim.Sprint("|"), padTo(text[:col]), pal.err.Sprint(marker))
}

// padTo returns whitespace that lines up with prefix on screen; tabs are kept
// so the caret follows the terminal's tab stops.
func padTo(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// PrettyFindings renders the groups of a scan: cross-file groups when the
// batch has them, otherwise each file's groups in file order.
func PrettyFindings(w io.Writer, batch *driver.Batch, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	groups := visible(batchGroups(batch), opts.ShowAll)
	for i := range groups {
		writeGroup(w, &groups[i], batch.FileSet, opts, pal, 0)
	}

	findings := batch.Findings()
	summary := fmt.Sprintf("%d finding(s) in %d file(s)", findings, len(batch.Files))
	if findings == 0 {
		fmt.Fprintln(w, pal.bold.Sprint(summary))
	} else {
		fmt.Fprintln(w, pal.warn.Sprint(summary))
	}

	if opts.ShowStats {
		writeStats(w, batch, opts, pal)
	}
}

func batchGroups(batch *driver.Batch) []group.Group {
	if batch.Groups != nil {
		return batch.Groups
	}
	var out []group.Group
	for i := range batch.Files {
		out = append(out, batch.Files[i].Groups...)
	}
	return out
}

func describeGroup(g *group.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q", g.Kind, g.CanonicalKey)
	if g.Exact {
		b.WriteString(" (exact)")
	}
	if g.Scope != "" {
		fmt.Fprintf(&b, " in %q", g.Scope)
	}
	return b.String()
}

func conventionNames(g *group.Group) []string {
	out := make([]string, len(g.Conventions))
	for i, tag := range g.Conventions {
		out[i] = tag.String()
	}
	return out
}

func writeGroup(w io.Writer, g *group.Group, fs *source.FileSet, opts PrettyOpts, pal palette, depth int) {
	indent := strings.Repeat("  ", depth)
	head := g.Members[0]
	verb := "uses"
	if !g.Actionable {
		verb = "consistently uses"
	}
	fmt.Fprintf(w, "%s%s: %s %s %d convention(s): %s\n",
		indent,
		pal.path.Sprint(position(head.Span, fs, opts.PathMode)),
		pal.kind.Sprint(describeGroup(g)),
		verb,
		len(g.Conventions),
		pal.tag.Sprint(strings.Join(conventionNames(g), ", ")))

	nameWidth := 0
	for _, m := range g.Members {
		nameWidth = max(nameWidth, runewidth.StringWidth(m.Name))
	}
	for _, m := range g.Members {
		fmt.Fprintf(w, "%s    %s %s %s\n",
			indent,
			pal.tag.Sprint(runewidth.FillRight(m.Tag.String(), 16)),
			pal.name.Sprint(runewidth.FillRight(m.Name, nameWidth)),
			pal.dim.Sprint(position(m.Span, fs, opts.PathMode)))
	}
	for i := range g.Nested {
		writeGroup(w, &g.Nested[i], fs, opts, pal, depth+1)
	}
}

func writeStats(w io.Writer, batch *driver.Batch, opts PrettyOpts, pal palette) {
	fmt.Fprintln(w)
	for i := range batch.Files {
		f := &batch.Files[i]
		writeStatsLine(w, formatPath(batch.FileSet.Get(f.FileID), batch.FileSet, opts.PathMode), f.Stats, pal)
	}
	if len(batch.Files) > 1 {
		writeStatsLine(w, "total", batch.Totals, pal)
	}
}

func writeStatsLine(w io.Writer, label string, s driver.Stats, pal palette) {
	fmt.Fprintf(w, "%s: %d LOC, %d declarations (%d variables, %d functions, %d macros, %d types, %d fields, %d enum constants)\n",
		pal.path.Sprint(label), s.LOC, s.Identifiers, s.Variables, s.Functions, s.Macros, s.Types, s.Fields, s.Constants)
	fmt.Fprintf(w, "  %d findings: %.2f per 100 LOC, %.2f per declaration, variables %.2f%%, functions %.2f%%\n",
		s.Findings, s.FindingsPer100LOC(), s.FindingsPerDecl(), s.VariableFindingRate()*100, s.FunctionFindingRate()*100)
}
