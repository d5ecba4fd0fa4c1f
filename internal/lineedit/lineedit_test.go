package lineedit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLineBufferInsertAndBackspace(t *testing.T) {
	b := newLineBuffer("")
	b.insert('h')
	b.insert('i')
	if got := b.String(); got != "hi" {
		t.Fatalf("String() = %q, want %q", got, "hi")
	}
	b.backspace()
	if got := b.String(); got != "h" {
		t.Fatalf("String() = %q, want %q", got, "h")
	}
	b.backspace()
	if got := b.backspace(); got != "" {
		t.Fatalf("backspace on empty buffer should be a no-op, got %q", got)
	}
}

func TestLineBufferDeleteToStartAndEnd(t *testing.T) {
	b := newLineBuffer("hello world")
	b.cursor = 5
	b.deleteToStart()
	if got := b.String(); got != " world" {
		t.Fatalf("String() = %q, want %q", got, " world")
	}

	b2 := newLineBuffer("hello world")
	b2.cursor = 5
	b2.deleteToEnd()
	if got := b2.String(); got != "hello" {
		t.Fatalf("String() = %q, want %q", got, "hello")
	}
}

func TestLineBufferDeleteWord(t *testing.T) {
	b := newLineBuffer("foo bar baz")
	b.cursor = len([]rune("foo bar baz"))
	b.deleteWord()
	if got := b.String(); got != "foo bar " {
		t.Fatalf("String() = %q, want %q", got, "foo bar ")
	}
}

func TestLineBufferMoveAndReplace(t *testing.T) {
	b := newLineBuffer("abc")
	b.moveHome()
	if b.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", b.cursor)
	}
	b.moveEnd()
	if b.cursor != 3 {
		t.Fatalf("cursor = %d, want 3", b.cursor)
	}
	b.replace("xyz")
	if got := b.String(); got != "xyz" {
		t.Fatalf("String() = %q, want %q", got, "xyz")
	}
	if b.cursor != 3 {
		t.Fatalf("cursor after replace = %d, want 3", b.cursor)
	}
}

func TestReadLineSimple(t *testing.T) {
	in := strings.NewReader("echo hi\n")
	var out bytes.Buffer
	e := New(nil, in, &out)

	line, err := e.ReadLine("")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "echo hi" {
		t.Fatalf("ReadLine = %q, want %q", line, "echo hi")
	}
}

func TestReadLineBackspaceEditing(t *testing.T) {
	in := strings.NewReader("echo hiXXX\x7f\x7f\x7f\n")
	var out bytes.Buffer
	e := New(nil, in, &out)

	line, err := e.ReadLine("")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "echo hi" {
		t.Fatalf("ReadLine = %q, want %q", line, "echo hi")
	}
}

func TestReadLineContinuationReplacesTrailingBackslash(t *testing.T) {
	in := strings.NewReader("world\n")
	var out bytes.Buffer
	e := New(nil, in, &out)

	line, err := e.ReadLine("hello\\")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "hello world" {
		t.Fatalf("ReadLine = %q, want %q", line, "hello world")
	}
}

func TestReadLineContinuationAppendsSpaceWithoutBackslash(t *testing.T) {
	in := strings.NewReader("world\n")
	var out bytes.Buffer
	e := New(nil, in, &out)

	line, err := e.ReadLine("hello")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "hello world" {
		t.Fatalf("ReadLine = %q, want %q", line, "hello world")
	}
}

func TestCursorOnTokenWithIndexMiddleToken(t *testing.T) {
	idx, start, end := cursorOnTokenWithIndex("ls -la /tmp", 5)
	if idx != 1 || start != 3 || end != 6 {
		t.Fatalf("cursorOnTokenWithIndex = (%d,%d,%d), want (1,3,6)", idx, start, end)
	}
}

func TestCursorOnTokenWithIndexPastLastToken(t *testing.T) {
	idx, _, _ := cursorOnTokenWithIndex("ls -la ", 7)
	if idx != -1 {
		t.Fatalf("cursorOnTokenWithIndex idx = %d, want -1", idx)
	}
}

func TestCursorOnTokenWithIndexInterTokenWhitespace(t *testing.T) {
	idx, _, _ := cursorOnTokenWithIndex("ls  -la", 3)
	if idx != -2 {
		t.Fatalf("cursorOnTokenWithIndex idx = %d, want -2", idx)
	}
}
