package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"convdup/internal/diag"
	"convdup/internal/driver"
)

// Short writes one line per actionable group followed by the diagnostics in
// the stable single-line form:
//
//	<path>:<line>:<col>: <kind> "<key>" [<conventions>]: <name> <path:line:col>, ...
func Short(w io.Writer, batch *driver.Batch, pathMode PathMode, withNotes bool) error {
	fs := batch.FileSet
	for _, g := range flatten(visible(batchGroups(batch), false)) {
		if !g.Actionable {
			continue
		}
		members := make([]string, len(g.Members))
		for i, m := range g.Members {
			members[i] = m.Name + " " + position(m.Span, fs, pathMode)
		}
		if _, err := fmt.Fprintf(w, "%s: %s [%s]: %s\n",
			position(g.Members[0].Span, fs, pathMode),
			describeGroup(&g),
			strings.Join(conventionNames(&g), ", "),
			strings.Join(members, ", ")); err != nil {
			return err
		}
	}
	bag := batch.Diagnostics()
	located := make([]diag.Diagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		if locatable(d, fs) {
			located = append(located, d)
		}
	}
	if out := diag.FormatShortDiagnostics(located, fs, withNotes); out != "" {
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}
