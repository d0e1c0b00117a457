package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileSet owns every file of a scan and maps spans back to positions.
// Workers load files concurrently, so all methods lock.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	base  string // для режима путей "relative"
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

// SetBaseDir sets the directory relative paths are computed against.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.mu.Lock()
	fs.base = dir
	fs.mu.Unlock()
}

// BaseDir returns the configured base directory or, when unset, the
// working directory.
func (fs *FileSet) BaseDir() string {
	fs.mu.RLock()
	dir := fs.base
	fs.mu.RUnlock()
	if dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Load reads path from disk and registers its decoded content.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- пути приходят из обхода каталогов, выбранных пользователем
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Decode(raw)
	return fs.register(path, content, flags), nil
}

// AddVirtual registers in-memory content under name as is.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.register(name, content, FileVirtual)
}

// Decode drops a leading UTF-8 BOM and folds CRLF line endings, reporting
// what it changed.
func Decode(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	content, hadBOM := removeBOM(raw)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, folded := normalizeCRLF(content)
	if folded {
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

func (fs *FileSet) register(path string, content []byte, flags FileFlags) FileID {
	f := &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files in set: %w", err))
	}
	f.ID = FileID(n)
	fs.files = append(fs.files, f)
	return f.ID
}

// Get returns the file registered under id.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.files[id]
}

func (fs *FileSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.files)
}

// Resolve maps both ends of span to line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return f.Position(span.Start), f.Position(span.End)
}

// Position maps a byte offset to its line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Line returns the text of 1-based line n without its newline, or "" when
// the file has no such line.
func (f *File) Line(n uint32) string {
	if n == 0 {
		return ""
	}
	idx := int(n) - 1
	start := 0
	if idx > 0 {
		if idx > len(f.LineIdx) {
			return ""
		}
		start = int(f.LineIdx[idx-1]) + 1
	}
	end := len(f.Content)
	if idx < len(f.LineIdx) {
		end = int(f.LineIdx[idx])
	}
	if start >= len(f.Content) {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the file path for output. mode is one of absolute,
// relative, basename or auto; baseDir only matters for relative.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		out = BaseName(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			out = BaseName(f.Path)
		}
	}
	if err != nil || out == "" {
		return f.Path
	}
	return out
}
