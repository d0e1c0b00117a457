package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"convdup/internal/config"
	"convdup/internal/decl"
	"convdup/internal/diag"
	"convdup/internal/group"
	"convdup/internal/observ"
	"convdup/internal/source"
)

const fixture = "testdata/company.c"

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func analyzeString(t *testing.T, src string, cfg *config.Config) FileResult {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(src))
	return AnalyzeSource(context.Background(), fs, id, cfg, Options{})
}

// describe renders top-level groups as "kind:key[@scope]" with the number
// of nested groups when there are any.
func describe(groups []group.Group) []string {
	out := make([]string, 0, len(groups))
	for i := range groups {
		s := groups[i].Kind.String() + ":" + groups[i].CanonicalKey
		if groups[i].Scope != "" {
			s += "@" + groups[i].Scope
		}
		if n := len(groups[i].Nested); n > 0 {
			s += fmt.Sprintf("+%d", n)
		}
		out = append(out, s)
	}
	return out
}

func TestAnalyzeFixture(t *testing.T) {
	cfg := defaultConfig(t)
	_, res, err := AnalyzeFile(context.Background(), fixture, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() || res.Bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if len(res.Identifiers) != 49 {
		t.Fatalf("expected 49 identifiers, got %d", len(res.Identifiers))
	}

	want := []string{
		"variable:employee count",
		"variable:company revenue",
		"variable:company expenses",
		"variable:department code",
		"variable:total assets",
		"field:number of employees@company info",
		"field:revenue in millions@company info",
		"typedef:company info",
		"field:company name@company details",
		"field:year established@company details",
		"typedef:company details",
		"function:print employee info",
		"function:calculate total revenue",
		"function:calculate average salary",
		"macro:max employees",
		"macro:min salary",
	}
	got := describe(res.Groups)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("groups mismatch\nwant %q\ngot  %q", want, got)
	}
	for i := range res.Groups {
		if !res.Groups[i].Actionable {
			t.Errorf("group %s should be actionable", got[i])
		}
	}
	if res.Findings() != 16 {
		t.Errorf("expected 16 findings, got %d", res.Findings())
	}
}

func TestAnalyzeFixtureNestedMerge(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Analysis.NestedPolicy = group.NestedMerge.String()
	_, res, err := AnalyzeFile(context.Background(), fixture, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Groups) != 12 {
		t.Fatalf("expected 12 top-level groups, got %d: %q", len(res.Groups), describe(res.Groups))
	}
	found := 0
	for i := range res.Groups {
		if res.Groups[i].Kind == decl.TypedefName {
			found++
			if len(res.Groups[i].Nested) != 2 {
				t.Errorf("%s: expected 2 nested field groups, got %d", res.Groups[i].CanonicalKey, len(res.Groups[i].Nested))
			}
		}
	}
	if found != 2 {
		t.Errorf("expected 2 typedef groups, got %d", found)
	}
	// вложенные группы всё ещё считаются находками
	if res.Findings() != 16 {
		t.Errorf("expected 16 findings, got %d", res.Findings())
	}
}

func TestAnalyzeFixtureStats(t *testing.T) {
	_, res, err := AnalyzeFile(context.Background(), fixture, defaultConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{
		Files:            1,
		LOC:              51,
		Identifiers:      49,
		Variables:        13,
		Functions:        7,
		Macros:           5,
		Types:            7,
		Fields:           8,
		Constants:        9,
		Findings:         16,
		VariableFindings: 5,
		FunctionFindings: 3,
	}
	if res.Stats != want {
		t.Fatalf("stats mismatch\nwant %+v\ngot  %+v", want, res.Stats)
	}
	if got := res.Stats.FindingsPerDecl(); got != 16.0/49.0 {
		t.Errorf("findings per decl: got %v", got)
	}
	if got := res.Stats.FindingsPer100LOC(); got != 1600.0/51.0 {
		t.Errorf("findings per 100 LOC: got %v", got)
	}
}

func TestStatsRatiosEmpty(t *testing.T) {
	var s Stats
	if s.FindingsPer100LOC() != 0 || s.FindingsPerDecl() != 0 || s.VariableFindingRate() != 0 || s.FunctionFindingRate() != 0 {
		t.Fatalf("empty stats must have zero ratios: %+v", s)
	}
}

func TestLinesOfCodeSkipsBlankAndComments(t *testing.T) {
	res := analyzeString(t, "// header\n\nint a;\n/* block\n comment */\nint b; // tail\n\n", defaultConfig(t))
	if res.Stats.LOC != 2 {
		t.Fatalf("expected 2 lines of code, got %d", res.Stats.LOC)
	}
}

func TestMalformedSourceNeverFails(t *testing.T) {
	res := analyzeString(t, "int a = \"open;\nint b_c, bC; }\n/* never closed", defaultConfig(t))
	if !res.Bag.HasErrors() {
		t.Fatal("expected lexical errors")
	}
	codes := map[diag.Code]bool{}
	for _, d := range res.Bag.Items() {
		codes[d.Code] = true
	}
	for _, code := range []diag.Code{diag.LexUnterminatedString, diag.LexUnterminatedComment, diag.SynUnbalancedDelimiter} {
		if !codes[code] {
			t.Errorf("expected %s, got %v", code.ID(), res.Bag.Items())
		}
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	_, _, err := AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "missing.c"), defaultConfig(t), Options{})
	if err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestTimerCollectsPasses(t *testing.T) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("int a_b; int aB;"))
	AnalyzeSource(context.Background(), fs, id, defaultConfig(t), Options{Timer: timer})

	names := map[string]bool{}
	for _, p := range timer.Report().Phases {
		names[p.Name] = true
	}
	for _, name := range []string{"lex", "extract", "group"} {
		if !names[name] {
			t.Errorf("missing timer phase %q in %v", name, timer.Report().Phases)
		}
	}
}

func batchFiles(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		writeFile(t, dir, "a.c", "int user_id;\nint userId;\n"),
		writeFile(t, dir, "b.c", "int UserId;\nvoid load_user(void);\n"),
		writeFile(t, dir, "c.c", "void loadUser(void);\n"),
		writeFile(t, dir, "d.c", "#define MAX_LEN 1\n#define max_len 2\n"),
	}
}

func TestAnalyzeFilesPerFile(t *testing.T) {
	paths := batchFiles(t)
	batch, err := AnalyzeFiles(context.Background(), paths, defaultConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if batch.Groups != nil {
		t.Fatal("cross-file groups must be nil when disabled")
	}
	wantFindings := []int{1, 0, 0, 1}
	for i, res := range batch.Files {
		if res.Path != batch.FileSet.Get(res.FileID).Path {
			t.Errorf("file %d: path %q does not match file set", i, res.Path)
		}
		if res.Findings() != wantFindings[i] {
			t.Errorf("%s: expected %d findings, got %d", res.Path, wantFindings[i], res.Findings())
		}
	}
	if batch.Findings() != 2 || batch.Totals.Findings != 2 {
		t.Errorf("expected 2 findings, got %d (totals %d)", batch.Findings(), batch.Totals.Findings)
	}
	if batch.Totals.Files != 4 || batch.Totals.Identifiers != 7 {
		t.Errorf("unexpected totals %+v", batch.Totals)
	}
}

func TestAnalyzeFilesCrossFile(t *testing.T) {
	paths := batchFiles(t)
	cfg := defaultConfig(t)
	cfg.Analysis.CrossFile = true
	batch, err := AnalyzeFiles(context.Background(), paths, cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"variable:user id", "function:load user", "macro:max len"}
	if got := describe(batch.Groups); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("want %q, got %q", want, got)
	}
	users := batch.Groups[0]
	if len(users.Members) != 3 || len(users.Conventions) != 3 {
		t.Errorf("user id group: %d members, %d conventions", len(users.Members), len(users.Conventions))
	}
	if files := users.Files(); len(files) != 2 {
		t.Errorf("user id group should span 2 files, got %v", files)
	}
	if batch.Findings() != 3 || batch.Totals.Findings != 3 {
		t.Errorf("expected 3 findings, got %d (totals %d)", batch.Findings(), batch.Totals.Findings)
	}
}

func TestAnalyzeFilesDeterministic(t *testing.T) {
	paths := batchFiles(t)
	cfg := defaultConfig(t)
	cfg.Analysis.CrossFile = true

	var want []string
	for _, jobs := range []int{1, 2, 8} {
		cfg.Files.Jobs = jobs
		batch, err := AnalyzeFiles(context.Background(), paths, cfg, Options{})
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, g := range batch.Groups {
			for _, m := range g.Members {
				got = append(got, filepath.Base(m.File)+":"+m.Name)
			}
		}
		if want == nil {
			want = got
			continue
		}
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Fatalf("jobs=%d: order changed\nwant %q\ngot  %q", jobs, want, got)
		}
	}
}

func TestAnalyzeFilesLoadError(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.c", "int a;")
	missing := filepath.Join(dir, "missing.c")

	batch, err := AnalyzeFiles(context.Background(), []string{good, missing}, defaultConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	bad := batch.Files[1]
	items := bad.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError || items[0].Severity != diag.SevError {
		t.Fatalf("expected one IO4001 error, got %v", items)
	}
	if path := batch.FileSet.Get(items[0].Primary.File).Path; filepath.Base(path) != "missing.c" {
		t.Errorf("diagnostic should point at missing.c, got %q", path)
	}
	if !batch.HasErrors() {
		t.Error("batch should report errors")
	}
	if batch.Files[0].Bag.Len() != 0 {
		t.Errorf("good file should be clean: %v", batch.Files[0].Bag.Items())
	}
}

func TestAnalyzeFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AnalyzeFiles(ctx, batchFiles(t), defaultConfig(t), Options{})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestAnalyzeFilesProgress(t *testing.T) {
	paths := batchFiles(t)
	var mu sync.Mutex
	last := map[string]Status{}
	queued := 0
	observer := func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Status == StatusQueued {
			queued++
		}
		last[ev.File] = ev.Status
	}
	if _, err := AnalyzeFiles(context.Background(), paths, defaultConfig(t), Options{Progress: observer}); err != nil {
		t.Fatal(err)
	}
	if queued != len(paths) {
		t.Errorf("expected %d queued events, got %d", len(paths), queued)
	}
	for _, path := range paths {
		if last[path] != StatusDone {
			t.Errorf("%s: final status %q", path, last[path])
		}
	}
}

func TestAnalyzeFilesTimingDiagnostic(t *testing.T) {
	timer := observ.NewTimer()
	batch, err := AnalyzeFiles(context.Background(), batchFiles(t), defaultConfig(t), Options{Timer: timer, EmitTimings: true})
	if err != nil {
		t.Fatal(err)
	}
	items := batch.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ObsTimings {
		t.Fatalf("expected one timings diagnostic, got %v", items)
	}
	if len(items[0].Notes) != 1 || !strings.Contains(items[0].Notes[0].Msg, `"phases"`) {
		t.Errorf("timings note should carry the JSON report: %v", items[0].Notes)
	}
}

func TestCrossFileTimingCountsMembers(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Analysis.CrossFile = true
	timer := observ.NewTimer()
	if _, err := AnalyzeFiles(context.Background(), batchFiles(t), cfg, Options{Timer: timer}); err != nil {
		t.Fatal(err)
	}
	for _, p := range timer.Report().Phases {
		if p.Name == "cross-file" {
			if p.Note != "7 member(s)" {
				t.Errorf("cross-file note = %q, want %q", p.Note, "7 member(s)")
			}
			return
		}
	}
	t.Fatal("cross-file phase not recorded")
}
