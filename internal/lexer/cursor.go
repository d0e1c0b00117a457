package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"convdup/internal/source"
)

// Cursor walks the bytes of one file. Reads past Limit yield 0.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // исключительная граница, по умолчанию len(File.Content)
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s too large: %w", f.Path, err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte.
func (c *Cursor) Peek() byte { return c.At(0) }

// At returns the byte n positions ahead of the cursor.
func (c *Cursor) At(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump consumes and returns the current byte.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Off++
	return true
}

// EatSeq consumes seq if the upcoming bytes spell it exactly.
func (c *Cursor) EatSeq(seq string) bool {
	n := uint32(len(seq)) // #nosec G115 -- последовательности операторов короче 4 байт
	if c.Off+n > c.Limit || string(c.File.Content[c.Off:c.Off+n]) != seq {
		return false
	}
	c.Off += n
	return true
}

// Mark remembers an offset to build spans from or rewind to.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom returns the bytes consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
