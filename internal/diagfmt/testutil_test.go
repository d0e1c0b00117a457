package diagfmt

import (
	"context"
	"testing"

	"convdup/internal/config"
	"convdup/internal/diag"
	"convdup/internal/driver"
	"convdup/internal/source"
)

type sourceFile struct {
	path string
	src  string
}

// scanSources analyses in-memory files the way driver.AnalyzeFiles does for
// files on disk.
func scanSources(t *testing.T, mutate func(*config.Config), files ...sourceFile) *driver.Batch {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	fs.SetBaseDir("/work")
	batch := &driver.Batch{FileSet: fs, Bag: diag.NewBag(10)}
	for _, f := range files {
		id := fs.AddVirtual(f.path, []byte(f.src))
		res := driver.AnalyzeSource(context.Background(), fs, id, &cfg, driver.Options{})
		batch.Files = append(batch.Files, res)
		batch.Totals.Add(res.Stats)
	}
	return batch
}

const sampleSource = `int employee_count = 1;
int employeeCount = 2;
int total;
typedef struct {
    int number_of_employees;
} company_info;
typedef struct {
    int numberOfEmployees;
} companyInfo;
`
