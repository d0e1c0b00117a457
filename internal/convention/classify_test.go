package convention

import (
	"slices"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		tag   Tag
		words string
	}{
		{"employee_count", SnakeCase, "employee count"},
		{"employeeCount", CamelCase, "employee count"},
		{"EmployeeCount", PascalCase, "employee count"},
		{"MAX_EMPLOYEES", ScreamingSnake, "max employees"},
		{"max_employees", SnakeCase, "max employees"},
		{"number_of_employees", SnakeCase, "number of employees"},
		{"numberOfEmployees", CamelCase, "number of employees"},
		{"companyStatus", CamelCase, "company status"},
		{"CompanySize", PascalCase, "company size"},
		{"Revenue", PascalCase, "revenue"},
		{"revenue", SnakeCase, "revenue"},
		{"STARTUP", ScreamingSnake, "startup"},
		{"X", ScreamingSnake, "x"},
		{"i", SnakeCase, "i"},
		{"HTTPServer", PascalCase, "http server"},
		{"parseHTTPResponse", CamelCase, "parse http response"},
		{"getID", CamelCase, "get id"},
		{"HTTP2Server", PascalCase, "http2 server"},
		{"employee2Count", CamelCase, "employee2 count"},
		{"employee_count2", SnakeCase, "employee count2"},
		{"UTF8_DECODER", ScreamingSnake, "utf8 decoder"},
		{"_private", Unrecognized, "private"},
		{"trailing_", Unrecognized, "trailing"},
		{"double__under", Unrecognized, "double under"},
		{"Employee_Count", Unrecognized, "employee count"},
		{"employee_2", Unrecognized, "employee 2"},
		{"_", Unrecognized, ""},
		{"größeWert", CamelCase, "größe wert"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, words := Classify(tt.name)
			if tag != tt.tag {
				t.Errorf("Classify(%q) tag = %v, want %v", tt.name, tag, tt.tag)
			}
			if words.Key() != tt.words {
				t.Errorf("Classify(%q) words = %q, want %q", tt.name, words.Key(), tt.words)
			}
		})
	}
}

func TestClassify_CrossConventionKeysMatch(t *testing.T) {
	families := [][]string{
		{"employee_count", "employeeCount", "EmployeeCount", "EMPLOYEE_COUNT"},
		{"company_info", "companyInfo", "CompanyInfo"},
		{"print_employee_info", "printEmployeeInfo", "PrintEmployeeInfo"},
	}
	for _, fam := range families {
		_, first := Classify(fam[0])
		for _, name := range fam[1:] {
			if _, w := Classify(name); !slices.Equal(w, first) {
				t.Errorf("%q and %q should share words, got %q vs %q", fam[0], name, first.Key(), w.Key())
			}
		}
	}
}

// Re-classifying the snake rendering of a recognised name yields the same words.
func TestClassify_WordsStable(t *testing.T) {
	for _, name := range []string{"parseHTTPResponse", "MAX_EMPLOYEES", "Revenue", "v2Beta", "companyName"} {
		tag, words := Classify(name)
		if tag == Unrecognized {
			t.Fatalf("%q unexpectedly unrecognized", name)
		}
		_, again := Classify(words.Snake())
		if !slices.Equal(again, words) {
			t.Errorf("%q: %q then %q", name, words.Key(), again.Key())
		}
		if _, w2 := Classify(name); !slices.Equal(w2, words) {
			t.Errorf("%q: classification is not deterministic", name)
		}
	}
}

func TestExplain_RuleNames(t *testing.T) {
	tests := map[string]string{
		"a_b":     "snake",
		"A_B":     "screaming",
		"AbC":     "pascal",
		"aBc":     "camel",
		"abc":     "single-lower",
		"ABC":     "single-upper",
		"_hidden": "",
	}
	for name, want := range tests {
		if _, _, rule := Explain(name); rule != want {
			t.Errorf("Explain(%q) rule = %q, want %q", name, rule, want)
		}
	}
}

func TestParseTag(t *testing.T) {
	for _, tag := range []Tag{SnakeCase, CamelCase, PascalCase, ScreamingSnake, Unrecognized} {
		for _, s := range []string{tag.Short(), tag.String(), strings.ToUpper(tag.Short())} {
			got, err := ParseTag(s)
			if err != nil || got != tag {
				t.Errorf("ParseTag(%q) = %v, %v", s, got, err)
			}
		}
	}
	if _, err := ParseTag("kebab"); err == nil {
		t.Error("expected error for kebab")
	}
}

func TestSet(t *testing.T) {
	s := NewSet(CamelCase, SnakeCase, CamelCase)
	if s.Len() != 2 || !s.Has(SnakeCase) || s.Has(PascalCase) {
		t.Fatalf("unexpected set %v", s.Tags())
	}
	got := s.Tags()
	if len(got) != 2 || got[0] != SnakeCase || got[1] != CamelCase {
		t.Errorf("Tags() order = %v", got)
	}
	if !NewSet().Empty() {
		t.Error("empty set reported non-empty")
	}
}

func BenchmarkClassify(b *testing.B) {
	names := []string{"employee_count", "parseHTTPResponse", "MAX_EMPLOYEES", "CompanySize"}
	for b.Loop() {
		for _, n := range names {
			Classify(n)
		}
	}
}

// A lone uppercase word counts as SCREAMING_SNAKE, so MAX and max differ in
// convention but share the key "max".
func TestClassify_SingleUpperWordIsScreamingSnake(t *testing.T) {
	for _, name := range []string{"MAX", "N", "STARTUP", "V2"} {
		tag, words := Classify(name)
		if tag != ScreamingSnake {
			t.Errorf("Classify(%q) = %v, want %v", name, tag, ScreamingSnake)
		}
		if _, lower := Classify(strings.ToLower(name)); !slices.Equal(words, lower) {
			t.Errorf("%q and its lowercase form must share words: %q vs %q", name, words.Key(), lower.Key())
		}
	}
}
