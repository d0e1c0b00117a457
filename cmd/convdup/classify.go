package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"convdup/internal/convention"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] name...",
	Short: "Show the naming convention and canonical words of names",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type classification struct {
	Name       string   `json:"name"`
	Convention string   `json:"convention"`
	Rule       string   `json:"rule,omitempty"`
	Words      []string `json:"words"`
	Key        string   `json:"key"`
	Snake      string   `json:"snake,omitempty"`
}

func classifyNames(names []string) []classification {
	out := make([]classification, 0, len(names))
	for _, name := range names {
		tag, words, rule := convention.Explain(name)
		out = append(out, classification{
			Name:       name,
			Convention: tag.String(),
			Rule:       rule,
			Words:      words,
			Key:        words.Key(),
		})
		if tag != convention.Unrecognized {
			// общая snake_case форма, по которой видно, с чем сольётся имя
			out[len(out)-1].Snake = words.Snake()
		}
	}
	return out
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	rows := classifyNames(args)
	switch format {
	case "pretty":
		return printClassifications(cmd.OutOrStdout(), rows)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printClassifications(w io.Writer, rows []classification) error {
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.Name))
	}
	for _, r := range rows {
		rule := r.Rule
		if rule == "" {
			rule = "-"
		}
		if _, err := fmt.Fprintf(w, "%s  %-16s %-14s %q\n",
			runewidth.FillRight(r.Name, width), r.Convention, rule, r.Key); err != nil {
			return err
		}
	}
	return nil
}
