package diagfmt

import (
	"encoding/csv"
	"io"
	"strconv"

	"convdup/internal/driver"
)

var csvHeader = []string{
	"path", "loc", "findings", "findings_per_100_loc",
	"variable_findings", "variables", "variable_finding_rate",
	"function_findings", "functions", "function_finding_rate",
	"identifiers", "macros", "types", "fields", "enum_constants",
}

// CSV writes one statistics row per file and, for more than one file, a
// final "total" row.
func CSV(w io.Writer, batch *driver.Batch, pathMode PathMode) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	fs := batch.FileSet
	for i := range batch.Files {
		f := &batch.Files[i]
		if err := cw.Write(csvRow(formatPath(fs.Get(f.FileID), fs, pathMode), f.Stats)); err != nil {
			return err
		}
	}
	if len(batch.Files) > 1 {
		if err := cw.Write(csvRow("total", batch.Totals)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(label string, s driver.Stats) []string {
	ratio := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	return []string{
		label,
		strconv.Itoa(s.LOC),
		strconv.Itoa(s.Findings),
		ratio(s.FindingsPer100LOC()),
		strconv.Itoa(s.VariableFindings),
		strconv.Itoa(s.Variables),
		ratio(s.VariableFindingRate()),
		strconv.Itoa(s.FunctionFindings),
		strconv.Itoa(s.Functions),
		ratio(s.FunctionFindingRate()),
		strconv.Itoa(s.Identifiers),
		strconv.Itoa(s.Macros),
		strconv.Itoa(s.Types),
		strconv.Itoa(s.Fields),
		strconv.Itoa(s.Constants),
	}
}
