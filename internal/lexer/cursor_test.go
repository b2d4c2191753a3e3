package lexer

import (
	"testing"

	"minic/internal/source"
)

func newTestCursor(content string) Cursor {
	fs := source.NewFileSet()
	id := fs.AddVirtual("cursor.c", []byte(content))
	return NewCursor(fs.Get(id))
}

func TestCursorBasics(t *testing.T) {
	c := newTestCursor("ab\ncd")
	if c.Peek() != 'a' || c.PeekAt(1) != 'b' || c.PeekAt(10) != 0 {
		t.Fatal("peek mismatch")
	}
	m := c.Mark()
	if c.Bump() != 'a' || !c.Eat('b') || c.Eat('x') {
		t.Fatal("bump/eat mismatch")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Reset(m)
	c.SkipLine()
	if c.Off != 2 || c.Peek() != '\n' {
		t.Fatalf("SkipLine stopped at %d", c.Off)
	}
	c.SkipToEnd()
	if !c.EOF() || c.Bump() != 0 {
		t.Fatal("expected EOF")
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("Peek2 past the end must fail")
	}
}
