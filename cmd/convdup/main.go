package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"convdup/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "convdup",
	Short: "Find names spelled in several naming conventions",
	Long: `convdup scans C-like sources for identifiers that denote the same name
but are written in different conventions (employee_count vs employeeCount).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return applyColorFlag(cmd)
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		flushTracing()
	},
}

// traceCleanup закрывает трассировщик; PersistentPostRun не вызывается при ошибке.
var traceCleanup func()

func flushTracing() {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
}

// main registers subcommands and global flags, then executes the root command.
// A non-nil error exits with status 2; findings exit with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(declsCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = config value)")
	rootCmd.PersistentFlags().String("trace", "", "write a trace to this file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	err := rootCmd.Execute()
	flushTracing()
	if err != nil {
		var exit exitError
		if asExitError(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(2)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
