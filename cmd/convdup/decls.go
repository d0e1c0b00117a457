package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"convdup/internal/config"
	"convdup/internal/decl"
	"convdup/internal/diagfmt"
	"convdup/internal/driver"
)

var declsCmd = &cobra.Command{
	Use:   "decls [flags] file.c",
	Short: "List the declarations extracted from a C source file",
	Long: `Decls prints every declared identifier with its kind, naming convention
and canonical words, in source order`,
	Args: cobra.ExactArgs(1),
	RunE: runDecls,
}

func init() {
	declsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	declsCmd.Flags().StringSlice("kind", nil, "only list these kinds (variable,struct,field,typedef,function,macro,macro-function,enum,enum-constant)")
}

// filterDecls keeps identifiers whose kind is listed; no kinds keeps all.
func filterDecls(ids []decl.Identifier, kinds []string) ([]decl.Identifier, error) {
	if len(kinds) == 0 {
		return ids, nil
	}
	keep := make(map[decl.Kind]bool, len(kinds))
	for _, s := range kinds {
		k, ok := decl.ParseKind(strings.TrimSpace(s))
		if !ok {
			return nil, fmt.Errorf("unknown declaration kind %q", s)
		}
		keep[k] = true
	}
	out := make([]decl.Identifier, 0, len(ids))
	for _, id := range ids {
		if keep[id.Kind] {
			out = append(out, id)
		}
	}
	return out, nil
}

func runDecls(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	kinds, err := cmd.Flags().GetStringSlice("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}

	cfg := config.Default()
	fs, res, err := driver.AnalyzeFile(cmd.Context(), args[0], &cfg, driver.Options{})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, res.Bag, fs, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 1,
		})
	}

	ids, err := filterDecls(res.Identifiers, kinds)
	if err != nil {
		return err
	}
	switch format {
	case "pretty":
		return diagfmt.FormatDeclsPretty(cmd.OutOrStdout(), ids)
	case "json":
		return diagfmt.FormatDeclsJSON(cmd.OutOrStdout(), ids)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
