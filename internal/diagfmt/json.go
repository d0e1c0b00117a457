package diagfmt

import (
	"encoding/json"
	"io"

	"convdup/internal/diag"
	"convdup/internal/driver"
	"convdup/internal/group"
	"convdup/internal/source"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// MemberJSON is one identifier of a group.
type MemberJSON struct {
	Name       string       `json:"name"`
	Convention string       `json:"convention"`
	Words      []string     `json:"words,omitempty"`
	Enclosing  string       `json:"enclosing,omitempty"`
	Location   LocationJSON `json:"location"`
}

// GroupJSON mirrors group.Group.
type GroupJSON struct {
	Kind        string       `json:"kind"`
	Scope       string       `json:"scope,omitempty"`
	Key         string       `json:"key"`
	Exact       bool         `json:"exact,omitempty"`
	Actionable  bool         `json:"actionable"`
	Conventions []string     `json:"conventions"`
	Members     []MemberJSON `json:"members"`
	Nested      []GroupJSON  `json:"nested,omitempty"`
}

// StatsJSON mirrors driver.Stats with the derived ratios.
type StatsJSON struct {
	LOC                 int     `json:"loc"`
	Identifiers         int     `json:"identifiers"`
	Variables           int     `json:"variables"`
	Functions           int     `json:"functions"`
	Macros              int     `json:"macros"`
	Types               int     `json:"types"`
	Fields              int     `json:"fields"`
	Constants           int     `json:"enum_constants"`
	Findings            int     `json:"findings"`
	VariableFindings    int     `json:"variable_findings"`
	FunctionFindings    int     `json:"function_findings"`
	FindingsPer100LOC   float64 `json:"findings_per_100_loc"`
	FindingsPerDecl     float64 `json:"findings_per_decl"`
	VariableFindingRate float64 `json:"variable_finding_rate"`
	FunctionFindingRate float64 `json:"function_finding_rate"`
}

// FileJSON is the per-file part of the report.
type FileJSON struct {
	Path   string      `json:"path"`
	Cached bool        `json:"cached,omitempty"`
	Stats  StatsJSON   `json:"stats"`
	Groups []GroupJSON `json:"groups,omitempty"`
}

// ReportOutput представляет корневую структуру JSON вывода
type ReportOutput struct {
	Files []FileJSON `json:"files"`
	// Groups is set in cross-file mode instead of per-file groups.
	Groups      []GroupJSON      `json:"groups,omitempty"`
	Findings    int              `json:"findings"`
	Totals      StatsJSON        `json:"totals"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeStats(s driver.Stats) StatsJSON {
	return StatsJSON{
		LOC:                 s.LOC,
		Identifiers:         s.Identifiers,
		Variables:           s.Variables,
		Functions:           s.Functions,
		Macros:              s.Macros,
		Types:               s.Types,
		Fields:              s.Fields,
		Constants:           s.Constants,
		Findings:            s.Findings,
		VariableFindings:    s.VariableFindings,
		FunctionFindings:    s.FunctionFindings,
		FindingsPer100LOC:   s.FindingsPer100LOC(),
		FindingsPerDecl:     s.FindingsPerDecl(),
		VariableFindingRate: s.VariableFindingRate(),
		FunctionFindingRate: s.FunctionFindingRate(),
	}
}

func makeGroups(groups []group.Group, fs *source.FileSet, opts JSONOpts) []GroupJSON {
	if len(groups) == 0 {
		return nil
	}
	out := make([]GroupJSON, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		gj := GroupJSON{
			Kind:        g.Kind.String(),
			Scope:       g.Scope,
			Key:         g.CanonicalKey,
			Exact:       g.Exact,
			Actionable:  g.Actionable,
			Conventions: conventionNames(g),
			Members:     make([]MemberJSON, len(g.Members)),
			Nested:      makeGroups(g.Nested, fs, opts),
		}
		for j, m := range g.Members {
			gj.Members[j] = MemberJSON{
				Name:       m.Name,
				Convention: m.Tag.String(),
				Words:      m.Words,
				Enclosing:  m.Enclosing,
				Location:   makeLocation(m.Span, fs, opts.PathMode, opts.IncludePositions),
			}
		}
		out = append(out, gj)
	}
	return out
}

func makeDiagnostics(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) []DiagnosticJSON {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := range maxItems {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		located := locatable(d, fs)
		if located {
			loc := makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions)
			dj.Location = &loc
		}
		includeNotes := opts.IncludeNotes || d.Code == diag.ObsTimings
		if includeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{Message: note.Msg}
				if located {
					loc := makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions)
					dj.Notes[j].Location = &loc
				}
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return diagnostics
}

// BuildReport формирует структуру JSON-вывода без сериализации.
func BuildReport(batch *driver.Batch, opts JSONOpts) ReportOutput {
	fs := batch.FileSet
	out := ReportOutput{
		Files:    make([]FileJSON, 0, len(batch.Files)),
		Findings: batch.Findings(),
		Totals:   makeStats(batch.Totals),
	}
	for i := range batch.Files {
		f := &batch.Files[i]
		fj := FileJSON{
			Path:   formatPath(fs.Get(f.FileID), fs, opts.PathMode),
			Cached: f.Cached,
			Stats:  makeStats(f.Stats),
		}
		if batch.Groups == nil {
			fj.Groups = makeGroups(visible(f.Groups, opts.IncludeAll), fs, opts)
		}
		out.Files = append(out.Files, fj)
	}
	if batch.Groups != nil {
		out.Groups = makeGroups(visible(batch.Groups, opts.IncludeAll), fs, opts)
	}
	out.Diagnostics = makeDiagnostics(batch.Diagnostics(), fs, opts)
	out.Count = len(out.Diagnostics)
	return out
}

// JSON форматирует результат сканирования в JSON.
func JSON(w io.Writer, batch *driver.Batch, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReport(batch, opts))
}
