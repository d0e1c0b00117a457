package source

// FileID identifies a file inside one FileSet.
type FileID uint32

// FileFlags records how a file's bytes were obtained.
type FileFlags uint8

const (
	// FileVirtual marks content that never came from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM: ведущий UTF-8 BOM был отброшен.
	FileHadBOM
	// FileNormalizedCRLF: переводы строк \r\n заменены на \n.
	FileNormalizedCRLF
)

// File is one scanned translation unit.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of every '\n' in Content.
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
