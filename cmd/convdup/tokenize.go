package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"convdup/internal/diag"
	"convdup/internal/diagfmt"
	"convdup/internal/lexer"
	"convdup/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.c",
	Short: "Tokenize a C source file",
	Long:  `Tokenize breaks down a C source file into the tokens the extractor sees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("comments", false, "emit comments as tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	keepComments, err := cmd.Flags().GetBool("comments")
	if err != nil {
		return fmt.Errorf("failed to get comments flag: %w", err)
	}
	limit, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	bag := diag.NewBag(limit) // 0 -> лимит по умолчанию
	tokens := lexer.Tokenize(fs.Get(id), lexer.Options{
		Reporter:     diag.BagReporter{Bag: bag},
		KeepComments: keepComments,
	})
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 1})

	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens, fs)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, fs)
}
