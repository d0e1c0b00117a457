package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"convdup/internal/config"
	"convdup/internal/diag"
	"convdup/internal/group"
	"convdup/internal/source"
	"convdup/internal/trace"
)

// Batch is the outcome of scanning a list of files.
type Batch struct {
	FileSet *source.FileSet
	// Files are in input order regardless of scheduling.
	Files []FileResult
	// Groups holds the cross-file groups; nil unless the config enables CrossFile.
	Groups []group.Group
	// Bag carries batch-wide diagnostics (timings).
	Bag    *diag.Bag
	Totals Stats
}

// Findings counts actionable groups: cross-file groups in cross-file
// mode, otherwise the sum over files.
func (b *Batch) Findings() int {
	if b.Groups != nil {
		return group.Findings(b.Groups)
	}
	n := 0
	for i := range b.Files {
		n += b.Files[i].Findings()
	}
	return n
}

// Diagnostics merges every file's diagnostics with the batch ones, sorted.
func (b *Batch) Diagnostics() *diag.Bag {
	out := diag.NewBag(1)
	for i := range b.Files {
		out.Merge(b.Files[i].Bag)
	}
	out.Merge(b.Bag)
	out.Sort()
	return out
}

// HasErrors reports whether any file produced an error diagnostic.
func (b *Batch) HasErrors() bool {
	for i := range b.Files {
		if b.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// AnalyzeFiles analyses paths in parallel with cfg.Files.Jobs workers.
// Results are deterministic: scheduling affects neither file order nor
// grouping. Unreadable files yield an IO4001 diagnostic instead of an error;
// the returned error is only ever a context cancellation.
func AnalyzeFiles(ctx context.Context, paths []string, cfg *config.Config, opts Options) (*Batch, error) {
	ctx, span := trace.Start(ctx, trace.ScopePhase, "analyze")
	span.WithExtra("files", strconv.Itoa(len(paths)))
	phase := opts.Timer.Begin("analyze")

	batch := &Batch{
		FileSet: source.NewFileSet(),
		Files:   make([]FileResult, len(paths)),
		Bag:     diag.NewBag(cfg.Analysis.MaxDiagnostics),
	}
	for _, path := range paths {
		opts.Progress.emit(ProgressEvent{File: path, Status: StatusQueued})
	}

	// Загружаем файлы заранее: FileID в порядке входа
	ids := make([]source.FileID, len(paths))
	loadErrs := make([]error, len(paths))
	for i, path := range paths {
		id, err := batch.FileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на нужный путь
			id = batch.FileSet.AddVirtual(path, nil)
			loadErrs[i] = err
		}
		ids[i] = id
	}

	jobs := cfg.Files.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErrs[i] != nil {
				batch.Files[i] = loadFailure(batch.FileSet.Get(ids[i]), loadErrs[i], cfg)
				trace.Point(gctx, trace.ScopeError, "load", loadErrs[i].Error())
				opts.Progress.emit(ProgressEvent{File: path, Status: StatusError, Err: loadErrs[i]})
				return nil
			}

			opts.Progress.emit(ProgressEvent{File: path, Status: StatusWorking})
			start := time.Now()
			// индекс i уникален для горутины, мьютекс не нужен
			batch.Files[i] = AnalyzeSource(gctx, batch.FileSet, ids[i], cfg, opts)
			status := StatusDone
			if batch.Files[i].Cached {
				status = StatusCached
			}
			opts.Progress.emit(ProgressEvent{
				File:     path,
				Status:   status,
				Findings: batch.Files[i].Findings(),
				Elapsed:  time.Since(start),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		opts.Timer.End(phase, "cancelled")
		span.End(err.Error())
		return batch, err
	}
	opts.Timer.End(phase, strconv.Itoa(len(paths))+" file(s)")
	span.End("")

	if cfg.Analysis.CrossFile {
		opts.Progress.emit(ProgressEvent{Phase: "cross-file", Status: StatusWorking})
		batch.Groups = crossFile(ctx, batch.Files, cfg, opts)
		opts.Progress.emit(ProgressEvent{Phase: "cross-file", Status: StatusDone, Findings: group.Findings(batch.Groups)})
	}
	for i := range batch.Files {
		batch.Totals.Add(batch.Files[i].Stats)
	}
	if batch.Groups != nil {
		// в режиме cross-file находки считаются по общим группам
		var cross Stats
		cross.countFindings(batch.Groups)
		batch.Totals.Findings = cross.Findings
		batch.Totals.VariableFindings = cross.VariableFindings
		batch.Totals.FunctionFindings = cross.FunctionFindings
	}

	if opts.EmitTimings && opts.Timer != nil {
		if d, ok := timingDiagnostic(opts.Timer.Report(), len(paths)); ok {
			batch.Bag.Force(d)
		}
	}
	return batch, nil
}

// crossFile regroups every member of every file as one population, file
// after file in input order.
func crossFile(ctx context.Context, files []FileResult, cfg *config.Config, opts Options) []group.Group {
	_, span := trace.Start(ctx, trace.ScopePhase, "group")
	phase := opts.Timer.Begin("cross-file")
	g := group.New(cfg.GroupOptions())
	for i := range files {
		g.Add(files[i].Members...)
	}
	groups := g.Groups()
	opts.Timer.End(phase, fmt.Sprintf("%d member(s)", g.Len()))
	span.WithExtra("members", strconv.Itoa(g.Len())).WithExtra("groups", strconv.Itoa(len(groups)))
	span.End("")
	if groups == nil {
		groups = []group.Group{}
	}
	return groups
}

func loadFailure(file *source.File, err error, cfg *config.Config) FileResult {
	bag := diag.NewBag(cfg.Analysis.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError,
		source.Span{File: file.ID},
		"failed to load file: "+err.Error()))
	return FileResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    bag,
		Stats:  Stats{Files: 1},
	}
}
