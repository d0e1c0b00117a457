package diagfmt

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"convdup/internal/decl"
	"convdup/internal/diag"
	"convdup/internal/lexer"
	"convdup/internal/source"
	"convdup/internal/token"
)

func TestSarif(t *testing.T) {
	batch := scanSources(t, nil,
		sourceFile{"a.c", sampleSource},
		sourceFile{"b.c", "char *s = \"open\n"},
	)

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "convdup", ToolVersion: "test", InvocationArgs: []string{"scan", "."}, PathMode: PathModeBasename}
	if err := Sarif(&buf, batch, meta); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF json: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "convdup" || len(run.Invocations) != 1 {
		t.Errorf("unexpected tool/invocations: %+v", run)
	}

	var duplications, lex int
	for _, r := range run.Results {
		switch {
		case strings.HasPrefix(r.RuleID, "convention-duplication/"):
			duplications++
			if len(r.RelatedLocations) == 0 || r.PartialFingerprints["convdupGroup/v1"] == "" {
				t.Errorf("group result lacks related locations or fingerprint: %+v", r)
			}
		case r.RuleID == "LEX1002":
			lex++
			if r.Level != "error" || len(r.Locations) != 1 || r.Locations[0].PhysicalLocation.ArtifactLocation.URI != "b.c" {
				t.Errorf("unexpected diagnostic result: %+v", r)
			}
		}
	}
	if duplications != 3 {
		t.Errorf("Expected 3 duplication results, got %d", duplications)
	}
	if lex != 1 {
		t.Errorf("Expected 1 LEX1002 result, got %d", lex)
	}

	first := run.Results[0]
	if first.RuleID != "convention-duplication/variable" {
		t.Fatalf("unexpected first rule %q", first.RuleID)
	}
	region := first.Locations[0].PhysicalLocation.Region
	if region.StartLine != 1 || region.StartColumn != 5 || region.EndColumn != 19 {
		t.Errorf("unexpected region: %+v", region)
	}
}

func TestSarifFingerprintStable(t *testing.T) {
	a := scanSources(t, nil, sourceFile{"a.c", "int user_id;\nint userId;\n"})
	b := scanSources(t, nil, sourceFile{"other.c", "\n\nint userId;\nint user_id;\n"})
	fa := buildSarif(a, SarifRunMeta{}).Runs[0].Results[0].PartialFingerprints
	fb := buildSarif(b, SarifRunMeta{}).Runs[0].Results[0].PartialFingerprints
	if fa["convdupGroup/v1"] != fb["convdupGroup/v1"] {
		t.Errorf("fingerprint depends on positions: %v vs %v", fa, fb)
	}
}

func TestCSV(t *testing.T) {
	batch := scanSources(t, nil,
		sourceFile{"a.c", sampleSource},
		sourceFile{"b.c", "int f(void);\nint F(void);\n"},
	)

	var buf bytes.Buffer
	if err := CSV(&buf, batch, PathModeBasename); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header, 2 files and total, got %d rows", len(rows))
	}
	if rows[0][0] != "path" || len(rows[0]) != len(csvHeader) {
		t.Errorf("unexpected header %v", rows[0])
	}
	// a.c: 9 LOC, 3 findings, 1 of 3 variables
	want := []string{"a.c", "9", "3", "33.33", "1", "3", "0.33", "0", "0", "0.00"}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("a.c column %s: want %s, got %s", csvHeader[i], v, rows[1][i])
		}
	}
	if rows[3][0] != "total" {
		t.Errorf("Expected total row, got %v", rows[3])
	}
}

func TestCSVSingleFileHasNoTotal(t *testing.T) {
	batch := scanSources(t, nil, sourceFile{"a.c", "int x;\n"})
	var buf bytes.Buffer
	if err := CSV(&buf, batch, PathModeBasename); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "total") {
		t.Errorf("single file must not get a total row:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	batch := scanSources(t, nil,
		sourceFile{"a.c", "int user_id;\nint userId;\n"},
		sourceFile{"b.c", "char *s = \"open\n"},
	)
	var buf bytes.Buffer
	if err := Short(&buf, batch, PathModeBasename, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	want := `a.c:1:5: variable "user id" [snake_case, camelCase]: user_id a.c:1:5, userId a.c:2:5`
	if lines[0] != want {
		t.Errorf("want %q\ngot  %q", want, lines[0])
	}
	if !strings.Contains(buf.String(), "LEX1002") {
		t.Errorf("diagnostics missing:\n%s", buf.String())
	}
}

func TestShortSkipsTimings(t *testing.T) {
	batch := scanSources(t, nil, sourceFile{"a.c", "int x;\n"})
	batch.Bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings"))
	var buf bytes.Buffer
	if err := Short(&buf, batch, PathModeBasename, true); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected empty output, got %q", buf.String())
	}
}

func TestFormatDecls(t *testing.T) {
	ids := []decl.Identifier{
		{Name: "employee_count", Kind: decl.Variable, Pos: source.LineCol{Line: 1, Col: 5}},
		{Name: "companyName", Kind: decl.StructFieldName, Enclosing: "company_info", Pos: source.LineCol{Line: 3, Col: 10}},
	}

	var pretty bytes.Buffer
	if err := FormatDeclsPretty(&pretty, ids); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(pretty.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", pretty.String())
	}
	if !strings.Contains(lines[0], "snake_case") || !strings.HasSuffix(lines[0], "employee count") {
		t.Errorf("unexpected line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "company name (in company_info)") {
		t.Errorf("unexpected line %q", lines[1])
	}

	var js bytes.Buffer
	if err := FormatDeclsJSON(&js, ids); err != nil {
		t.Fatal(err)
	}
	var out []DeclOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1].Convention != "camelCase" || out[1].Kind != "field" || out[1].Line != 3 {
		t.Errorf("unexpected decls: %+v", out)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.c", []byte("int x; // c\n"))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `"x" at 1:5-1:6`) {
		t.Errorf("unexpected pretty tokens:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 || out[len(out)-1].Kind != token.EOF.String() {
		t.Errorf("token stream must end with EOF: %+v", out)
	}
}
