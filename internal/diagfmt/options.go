package diagfmt

// PathMode selects how file paths appear in reports.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long
	// absolute ones to the file name.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative // относительно FileSet.BaseDir
	PathModeBasename
)

var pathModeNames = [...]string{"auto", "absolute", "relative", "basename"}

// String returns the mode name understood by source.File.FormatPath.
func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return "auto"
}

// PrettyOpts configures pretty-printing of diagnostics and findings.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строки контекста перед строкой диагностики
	PathMode  PathMode
	ShowNotes bool
	// ShowAll also lists groups that use a single convention.
	ShowAll   bool
	ShowStats bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода диагностик, не Bag
	IncludeNotes     bool
	// IncludeAll also emits groups that use a single convention.
	IncludeAll bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	PathMode       PathMode
}
