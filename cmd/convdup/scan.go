package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"convdup/internal/config"
	"convdup/internal/diagfmt"
	"convdup/internal/driver"
	"convdup/internal/observ"
	"convdup/internal/trace"
	"convdup/internal/version"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [path...]",
	Short: "Report names spelled in more than one naming convention",
	Long: `Scan analyses C-like source files (or every matching file under the given
directories) and reports groups of identifiers that share a canonical name but
use different naming conventions. Exits with status 1 when findings exist.`,
	RunE: runScan,
}

func init() {
	registerScanFlags(scanCmd.Flags())
}

// registerScanFlags declares the scan flags. Flags that mirror config keys
// override the loaded convdup.toml only when set explicitly.
func registerScanFlags(flags *pflag.FlagSet) {
	flags.String("format", "pretty", "output format (pretty|short|json|sarif|csv)")
	flags.String("config", "", "path to convdup.toml (default: nearest one above the first path)")
	flags.Int("jobs", 0, "max parallel workers (0=auto)")
	flags.Bool("cross-file", false, "group identifiers across all files instead of per file")
	flags.String("nested", "independent", "report member groups of a duplicated type (independent|merge)")
	flags.Bool("no-scope", false, "group struct fields and enum constants regardless of their enclosing type")
	flags.Int("min-conventions", 2, "distinct conventions required for a finding")
	flags.StringSlice("ignore", nil, "conventions to ignore (snake,camel,pascal,screaming,unrecognized)")
	flags.StringSlice("include", nil, "glob patterns of files to scan inside directories")
	flags.StringSlice("exclude", nil, "glob patterns of files or directories to skip")
	flags.Bool("cache", false, "reuse per-file results from the user cache directory")
	flags.String("ui", "off", "progress UI (auto|on|off)")
	flags.Bool("exit-zero", false, "exit with status 0 even when findings exist")
	flags.Bool("all", false, "also list names that use a single convention")
	flags.Bool("stats", false, "print per-file statistics (pretty format)")
	flags.Bool("with-notes", false, "include diagnostic notes in output")
	flags.Bool("fullpath", false, "emit absolute file paths in output")
}

// applyScanFlags overlays explicitly set flags on cfg and validates it.
func applyScanFlags(flags *pflag.FlagSet, maxDiagnostics int, cfg *config.Config) error {
	var err error
	if flags.Changed("jobs") {
		if cfg.Files.Jobs, err = flags.GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("cross-file") {
		if cfg.Analysis.CrossFile, err = flags.GetBool("cross-file"); err != nil {
			return fmt.Errorf("failed to get cross-file flag: %w", err)
		}
	}
	if flags.Changed("nested") {
		if cfg.Analysis.NestedPolicy, err = flags.GetString("nested"); err != nil {
			return fmt.Errorf("failed to get nested flag: %w", err)
		}
	}
	if flags.Changed("no-scope") {
		noScope, err := flags.GetBool("no-scope")
		if err != nil {
			return fmt.Errorf("failed to get no-scope flag: %w", err)
		}
		cfg.Analysis.EnforceEnclosingScope = !noScope
	}
	if flags.Changed("min-conventions") {
		if cfg.Analysis.MinConventions, err = flags.GetInt("min-conventions"); err != nil {
			return fmt.Errorf("failed to get min-conventions flag: %w", err)
		}
	}
	if flags.Changed("ignore") {
		if cfg.Analysis.IgnoredConventions, err = flags.GetStringSlice("ignore"); err != nil {
			return fmt.Errorf("failed to get ignore flag: %w", err)
		}
	}
	if flags.Changed("include") {
		if cfg.Files.Include, err = flags.GetStringSlice("include"); err != nil {
			return fmt.Errorf("failed to get include flag: %w", err)
		}
	}
	if flags.Changed("exclude") {
		if cfg.Files.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
			return fmt.Errorf("failed to get exclude flag: %w", err)
		}
	}
	if maxDiagnostics > 0 {
		cfg.Analysis.MaxDiagnostics = maxDiagnostics
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

type scanOutput struct {
	format    string
	pathMode  diagfmt.PathMode
	color     bool
	withNotes bool
	all       bool
	stats     bool
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	flags := cmd.Flags()

	// Получаем флаги
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json", "sarif", "csv":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	exitZero, err := flags.GetBool("exit-zero")
	if err != nil {
		return fmt.Errorf("failed to get exit-zero flag: %w", err)
	}
	out := scanOutput{format: format, pathMode: diagfmt.PathModeRelative, color: useColor(cmd, os.Stdout)}
	if out.all, err = flags.GetBool("all"); err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	if out.stats, err = flags.GetBool("stats"); err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}
	if out.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		out.pathMode = diagfmt.PathModeAbsolute
	}

	cfg, err := config.Resolve(configPath, args[0])
	if err != nil {
		return err
	}
	if err := applyScanFlags(flags, maxDiagnostics, &cfg); err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	ctx := cmd.Context()
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	discoverCtx, span := trace.Start(ctx, trace.ScopePhase, "discover")
	phase := timer.Begin("discover")
	files, err := driver.Discover(discoverCtx, args, cfg.Files.Include, cfg.Files.Exclude)
	timer.End(phase, fmt.Sprintf("%d file(s)", len(files)))
	span.End("")
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found under %s", strings.Join(args, ", "))
	}

	opts := driver.Options{
		Timer: timer,
		// сводка таймингов попадает в машинные форматы как диагностика
		EmitTimings: showTimings && (format == "json" || format == "sarif"),
	}
	if useCache {
		cache, err := driver.OpenDiskCache("convdup")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}

	var batch *driver.Batch
	if !quiet && mode.enabled(isTerminal(os.Stdout), isTerminal(os.Stderr)) {
		batch, err = runScanWithUI(ctx, "convdup scan", files, &cfg, opts)
	} else {
		batch, err = driver.AnalyzeFiles(ctx, files, &cfg, opts)
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if wd, err := os.Getwd(); err == nil {
		batch.FileSet.SetBaseDir(wd)
	}

	if err := writeScanOutput(cmd.OutOrStdout(), os.Stderr, batch, out, cmd.Root().CommandPath()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if showTimings && !opts.EmitTimings {
		printTimings(os.Stderr, timer)
	}

	if batch.Findings() > 0 && !exitZero {
		// находки уже напечатаны, usage и "Error:" не нужны
		cmd.SilenceErrors = true
		return exitError{code: 1}
	}
	return nil
}

// writeScanOutput renders batch in the chosen format. Human formats send
// source diagnostics to errOut so the report itself stays pipeable.
func writeScanOutput(w, errOut io.Writer, batch *driver.Batch, out scanOutput, toolName string) error {
	switch out.format {
	case "pretty":
		bag := batch.Diagnostics()
		if bag.Len() > 0 {
			diagfmt.Pretty(errOut, bag, batch.FileSet, diagfmt.PrettyOpts{
				Color:     out.color,
				Context:   1,
				PathMode:  out.pathMode,
				ShowNotes: out.withNotes,
			})
		}
		diagfmt.PrettyFindings(w, batch, diagfmt.PrettyOpts{
			Color:     out.color,
			PathMode:  out.pathMode,
			ShowAll:   out.all,
			ShowStats: out.stats,
		})
		return nil
	case "short":
		return diagfmt.Short(w, batch, out.pathMode, out.withNotes)
	case "json":
		return diagfmt.JSON(w, batch, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         out.pathMode,
			IncludeNotes:     out.withNotes,
			IncludeAll:       out.all,
		})
	case "sarif":
		return diagfmt.Sarif(w, batch, diagfmt.SarifRunMeta{
			ToolName:       toolName,
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
			PathMode:       out.pathMode,
		})
	case "csv":
		return diagfmt.CSV(w, batch, out.pathMode)
	default:
		return fmt.Errorf("unknown format: %s", out.format)
	}
}
