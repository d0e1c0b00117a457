package driver

import (
	"context"
	"strconv"

	"convdup/internal/config"
	"convdup/internal/decl"
	"convdup/internal/diag"
	"convdup/internal/extract"
	"convdup/internal/group"
	"convdup/internal/lexer"
	"convdup/internal/observ"
	"convdup/internal/source"
	"convdup/internal/token"
	"convdup/internal/trace"
)

// Options tunes a scan. The zero value analyses without a cache, timer or
// progress reporting.
type Options struct {
	Cache    *DiskCache
	Timer    *observ.Timer
	Progress ProgressObserver
	// EmitTimings appends an OBS6001 diagnostic with the timer report to the batch.
	EmitTimings bool
}

// FileResult is everything known about one scanned file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Identifiers []decl.Identifier
	Members     []group.Member
	// Groups are the file's own groups, computed even in cross-file mode.
	Groups    []group.Group
	Bag       *diag.Bag
	Stats     Stats
	Truncated bool
	Cached    bool
}

// Findings counts the actionable groups of the file.
func (r *FileResult) Findings() int {
	return group.Findings(r.Groups)
}

// AnalyzeSource runs the whole pipeline over a file already present in fs.
// Malformed source never fails the call: problems land in the result's Bag.
func AnalyzeSource(ctx context.Context, fs *source.FileSet, id source.FileID, cfg *config.Config, opts Options) FileResult {
	return analyzeFile(ctx, fs.Get(id), cfg, opts)
}

// AnalyzeFile loads path into a fresh FileSet and analyses it. The only
// error is a failure to read the file.
func AnalyzeFile(ctx context.Context, path string, cfg *config.Config, opts Options) (*source.FileSet, FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fs, FileResult{}, err
	}
	return fs, AnalyzeSource(ctx, fs, id, cfg, opts), nil
}

func analyzeFile(ctx context.Context, file *source.File, cfg *config.Config, opts Options) FileResult {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file")
	span.WithExtra("path", file.Path)

	res := FileResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    diag.NewBag(cfg.Analysis.MaxDiagnostics),
	}

	var key Digest
	var loc int
	if opts.Cache != nil {
		key = CacheKey(file.Content, cfg)
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			trace.Point(ctx, trace.ScopeError, "cache", err.Error())
		case ok && payload.Schema == diskCacheSchemaVersion:
			loc = restorePayload(&res, file.ID, &payload)
			res.Cached = true
		}
	}

	if !res.Cached {
		rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

		_, lexSpan := trace.Start(ctx, trace.ScopePass, "lex")
		toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
		lexSpan.WithExtra("tokens", strconv.Itoa(len(toks)))
		opts.Timer.Add("lex", lexSpan.End(""))

		_, extractSpan := trace.Start(ctx, trace.ScopePass, "extract")
		ex := extract.Extract(toks, extract.Options{Reporter: rep})
		extractSpan.WithExtra("identifiers", strconv.Itoa(len(ex.Identifiers)))
		opts.Timer.Add("extract", extractSpan.End(""))

		res.Identifiers = ex.Identifiers
		res.Truncated = ex.Truncated
		res.Bag.Sort()
		loc = linesOfCode(toks)

		if opts.Cache != nil {
			if err := opts.Cache.Put(key, newPayload(&res, loc)); err != nil {
				trace.Point(ctx, trace.ScopeError, "cache", err.Error())
			}
		}
	}

	_, groupSpan := trace.Start(ctx, trace.ScopePass, "group")
	res.Members = group.Members(res.Identifiers, file.Path)
	g := group.New(cfg.GroupOptions())
	g.Add(res.Members...)
	res.Groups = g.Groups()
	groupSpan.WithExtra("groups", strconv.Itoa(len(res.Groups)))
	opts.Timer.Add("group", groupSpan.End(""))

	res.Stats = computeStats(loc, res.Identifiers, res.Groups)

	if res.Cached {
		span.WithExtra("cached", "true")
	}
	span.End("")
	return res
}

// linesOfCode counts lines holding at least one token; blank and
// comment-only lines do not count.
func linesOfCode(toks []token.Token) int {
	n := 0
	var last uint32
	for i := range toks {
		if toks[i].Kind == token.EOF || toks[i].Kind == token.Comment {
			continue
		}
		if line := toks[i].Pos.Line; line != last {
			n++
			last = line
		}
	}
	return n
}
