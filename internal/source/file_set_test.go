package source

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		flags FileFlags
	}{
		{"plain", "int a;\n", "int a;\n", 0},
		{"bom", "\xEF\xBB\xBFint a;\n", "int a;\n", FileHadBOM},
		{"crlf", "int a;\r\nint b;\r\n", "int a;\nint b;\n", FileNormalizedCRLF},
		{"both", "\xEF\xBB\xBFa\r\n", "a\n", FileHadBOM | FileNormalizedCRLF},
		{"lone cr kept", "a\rb", "a\rb", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := Decode([]byte(tt.in))
			if string(got) != tt.want || flags != tt.flags {
				t.Errorf("Decode(%q) = %q, %b; want %q, %b", tt.in, got, flags, tt.want, tt.flags)
			}
		})
	}
}

func TestLoadDecodesFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "win.c")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFint a;\r\nint b;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "int a;\nint b;\n" {
		t.Errorf("content = %q", file.Content)
	}
	if file.Flags&FileVirtual != 0 {
		t.Error("disk file marked virtual")
	}
	if len(file.LineIdx) != 2 || file.LineIdx[0] != 6 {
		t.Errorf("LineIdx = %v", file.LineIdx)
	}

	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.c")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConcurrentRegistration(t *testing.T) {
	fs := NewFileSet()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fs.AddVirtual("v.c", []byte("int x;\n"))
		}()
	}
	wg.Wait()
	if fs.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", fs.Len())
	}
	for i := 0; i < fs.Len(); i++ {
		if got := fs.Get(FileID(i)).ID; got != FileID(i) {
			t.Errorf("file %d carries id %d", i, got)
		}
	}
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("p.c", []byte("ab\ncd\n\nef")))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, c := range cases {
		if got := file.Position(c.off); got != c.want {
			t.Errorf("Position(%d) = %+v, want %+v", c.off, got, c.want)
		}
	}

	start, end := fs.Resolve(Span{File: file.ID, Start: 3, End: 5})
	if start != (LineCol{2, 1}) || end != (LineCol{2, 3}) {
		t.Errorf("Resolve = %+v..%+v", start, end)
	}
}

func TestLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("l.c", []byte("first\nsecond\nthird")))

	for n, want := range map[uint32]string{1: "first", 2: "second", 3: "third", 4: "", 0: ""} {
		if got := file.Line(n); got != want {
			t.Errorf("Line(%d) = %q, want %q", n, got, want)
		}
	}

	trailing := fs.Get(fs.AddVirtual("t.c", []byte("a\n")))
	if got := trailing.Line(2); got != "" {
		t.Errorf("line after trailing newline = %q", got)
	}
}

func TestFormatPath(t *testing.T) {
	long := "/" + strings.Repeat("deep/", 10) + "unit.c"
	fs := NewFileSet()
	short := fs.Get(fs.AddVirtual("/work/src/a.c", nil))
	deep := fs.Get(fs.AddVirtual(long, nil))

	tests := []struct {
		name string
		file *File
		mode string
		want string
	}{
		{"relative", short, "relative", "src/a.c"},
		{"basename", short, "basename", "a.c"},
		{"absolute", short, "absolute", "/work/src/a.c"},
		{"auto short", short, "auto", "/work/src/a.c"},
		{"auto long", deep, "auto", "unit.c"},
		{"unknown mode", short, "weird", "/work/src/a.c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.FormatPath(tt.mode, "/work"); got != tt.want {
				t.Errorf("FormatPath(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestBaseDirFallsBackToWorkingDir(t *testing.T) {
	fs := NewFileSet()
	wd, err := os.Getwd()
	if err != nil {
		t.Skip(err)
	}
	if got := fs.BaseDir(); got != wd {
		t.Errorf("BaseDir() = %q, want %q", got, wd)
	}
	fs.SetBaseDir("/work")
	if got := fs.BaseDir(); got != "/work" {
		t.Errorf("BaseDir() = %q after SetBaseDir", got)
	}
}
