package lexer

import (
	"testing"

	"convdup/internal/source"
)

func cursorOver(content string) Cursor {
	fs := source.NewFileSet()
	return NewCursor(fs.Get(fs.AddVirtual("cur.c", []byte(content))))
}

func TestCursorBumpUntilEOF(t *testing.T) {
	c := cursorOver("a\nb")
	var got []byte
	for !c.EOF() {
		got = append(got, c.Bump())
	}
	if string(got) != "a\nb" {
		t.Fatalf("bumped %q", got)
	}
	if c.Peek() != 0 || c.Bump() != 0 || c.Off != 3 {
		t.Errorf("past EOF: peek %q off %d", c.Peek(), c.Off)
	}
}

func TestCursorAt(t *testing.T) {
	c := cursorOver("abc")
	c.Bump()
	tests := []struct {
		n    uint32
		want byte
	}{
		{0, 'b'},
		{1, 'c'},
		{2, 0},
		{40, 0},
	}
	for _, tt := range tests {
		if got := c.At(tt.n); got != tt.want {
			t.Errorf("At(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCursorRespectsLimit(t *testing.T) {
	c := cursorOver("abcdef")
	c.Limit = 3
	if c.At(2) != 'c' || c.At(3) != 0 {
		t.Errorf("At ignores Limit: %q %q", c.At(2), c.At(3))
	}
	if c.EatSeq("abcd") {
		t.Error("EatSeq crossed Limit")
	}
	c.Off = 3
	if !c.EOF() {
		t.Error("expected EOF at Limit")
	}
}

func TestCursorEat(t *testing.T) {
	c := cursorOver("a\nb")
	if c.Eat('x') || c.Off != 0 {
		t.Fatal("Eat consumed a mismatching byte")
	}
	for _, b := range []byte("a\nb") {
		if !c.Eat(b) {
			t.Fatalf("Eat(%q) failed at %d", b, c.Off)
		}
	}
	if c.Eat('x') {
		t.Error("Eat succeeded at EOF")
	}
}

func TestCursorEatSeq(t *testing.T) {
	tests := []struct {
		src  string
		seq  string
		ok   bool
		rest uint32
	}{
		{"<<=1", "<<=", true, 3},
		{"<<1", "<<=", false, 0},
		{"*/", "*/", true, 2},
		{"*", "*/", false, 0},
		{"\\\nx", "\\\n", true, 2},
	}
	for _, tt := range tests {
		c := cursorOver(tt.src)
		if got := c.EatSeq(tt.seq); got != tt.ok || c.Off != tt.rest {
			t.Errorf("EatSeq(%q) on %q = %v off %d, want %v off %d", tt.seq, tt.src, got, c.Off, tt.ok, tt.rest)
		}
	}
}

func TestCursorMarkSpanReset(t *testing.T) {
	c := cursorOver("α\nβ")
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Errorf("span over α = %d..%d, want 0..2", sp.Start, sp.End)
	}
	if got := string(c.File.Content[sp.Start:sp.End]); got != "α" {
		t.Errorf("span text %q", got)
	}

	nl := c.Mark()
	c.Bump()
	if sp := c.SpanFrom(nl); sp.Start != 2 || sp.End != 3 {
		t.Errorf("newline span = %d..%d", sp.Start, sp.End)
	}
	if pos := c.File.Position(3); pos != (source.LineCol{Line: 2, Col: 1}) {
		t.Errorf("β starts at %+v", pos)
	}

	c.Reset(m)
	if c.Off != 0 || c.Peek() != "α"[0] {
		t.Errorf("Reset left off=%d", c.Off)
	}
}
