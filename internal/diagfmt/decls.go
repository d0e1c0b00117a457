package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"convdup/internal/convention"
	"convdup/internal/decl"
)

// DeclOutput is one extracted identifier with its classification.
type DeclOutput struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Enclosing  string   `json:"enclosing,omitempty"`
	Convention string   `json:"convention"`
	Words      []string `json:"words,omitempty"`
	Line       uint32   `json:"line"`
	Col        uint32   `json:"col"`
}

func makeDecls(ids []decl.Identifier) []DeclOutput {
	out := make([]DeclOutput, 0, len(ids))
	for _, id := range ids {
		tag, words := convention.Classify(id.Name)
		out = append(out, DeclOutput{
			Name:       id.Name,
			Kind:       id.Kind.String(),
			Enclosing:  id.Enclosing,
			Convention: tag.String(),
			Words:      words,
			Line:       id.Pos.Line,
			Col:        id.Pos.Col,
		})
	}
	return out
}

// FormatDeclsPretty prints one aligned row per identifier:
// position, kind, name, convention, canonical words and enclosing type.
func FormatDeclsPretty(w io.Writer, ids []decl.Identifier) error {
	rows := makeDecls(ids)
	nameWidth := 4
	for _, r := range rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Name))
	}
	for _, r := range rows {
		line := fmt.Sprintf("%4d:%-3d %-14s %s %-16s %s",
			r.Line, r.Col, r.Kind,
			runewidth.FillRight(r.Name, nameWidth),
			r.Convention,
			convention.Words(r.Words).Key())
		if r.Enclosing != "" {
			line += " (in " + r.Enclosing + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatDeclsJSON prints the identifiers as a JSON array.
func FormatDeclsJSON(w io.Writer, ids []decl.Identifier) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(makeDecls(ids))
}
