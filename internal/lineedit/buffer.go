package lineedit

import "strings"

// lineBuffer is the in-progress command line: a rune buffer with a
// cursor position, mirroring read_line's buffer/position/cursor_pos
// trio. Every mutating method returns the terminal output needed to
// redraw the visible line, so the Editor's read loop stays a thin
// dispatch table over key codes.
type lineBuffer struct {
	runes  []rune
	cursor int
}

func newLineBuffer(initial string) *lineBuffer {
	r := []rune(initial)
	return &lineBuffer{runes: r, cursor: len(r)}
}

func (b *lineBuffer) String() string { return string(b.runes) }

// insert adds r at the cursor.
func (b *lineBuffer) insert(r rune) string {
	b.runes = append(b.runes[:b.cursor], append([]rune{r}, b.runes[b.cursor:]...)...)
	b.cursor++
	tail := string(b.runes[b.cursor-1:])
	return tail + strings.Repeat("\b", len(b.runes)-b.cursor)
}

// backspace deletes the rune before the cursor, or is a no-op at the
// start of the line.
func (b *lineBuffer) backspace() string {
	if b.cursor == 0 {
		return ""
	}
	b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
	b.cursor--
	tail := string(b.runes[b.cursor:])
	return "\b \b" + tail + " " + strings.Repeat("\b", len(tail)+1)
}

// deleteToStart implements Ctrl-U.
func (b *lineBuffer) deleteToStart() string {
	var out strings.Builder
	for b.cursor > 0 {
		out.WriteString(b.backspace())
	}
	return out.String()
}

// deleteToEnd implements Ctrl-K.
func (b *lineBuffer) deleteToEnd() string {
	if b.cursor >= len(b.runes) {
		return ""
	}
	n := len(b.runes) - b.cursor
	b.runes = b.runes[:b.cursor]
	return strings.Repeat(" ", n) + strings.Repeat("\b", n)
}

// deleteWord implements Ctrl-W: delete the run of trailing spaces and
// the word before the cursor.
func (b *lineBuffer) deleteWord() string {
	if b.cursor == 0 {
		return ""
	}
	prevCursor := b.cursor
	for b.cursor > 0 && b.runes[b.cursor-1] == ' ' {
		b.cursor--
	}
	for b.cursor > 0 && b.runes[b.cursor-1] != ' ' {
		b.cursor--
	}
	b.runes = append(b.runes[:b.cursor], b.runes[prevCursor:]...)

	erased := prevCursor - b.cursor
	tail := string(b.runes[b.cursor:])
	var out strings.Builder
	out.WriteString(strings.Repeat("\b \b", erased))
	out.WriteString(tail)
	out.WriteString(strings.Repeat(" ", erased))
	out.WriteString(strings.Repeat("\b", len(tail)+erased))
	return out.String()
}

func (b *lineBuffer) moveHome() string {
	out := strings.Repeat("\b", b.cursor)
	b.cursor = 0
	return out
}

func (b *lineBuffer) moveEnd() string {
	out := string(b.runes[b.cursor:])
	b.cursor = len(b.runes)
	return out
}

func (b *lineBuffer) moveLeft() string {
	if b.cursor == 0 {
		return ""
	}
	b.cursor--
	return "\b"
}

func (b *lineBuffer) moveRight() string {
	if b.cursor >= len(b.runes) {
		return ""
	}
	out := string(b.runes[b.cursor])
	b.cursor++
	return out
}

// replace clears the visible line and resets the buffer to s, cursor
// at the end — used for history recall.
func (b *lineBuffer) replace(s string) string {
	return b.replaceAt(s, len([]rune(s)))
}

// replaceAt clears the visible line and resets the buffer to s with
// the cursor placed at the given rune offset — used by tab completion,
// which may leave the cursor mid-line when a suffix follows the word
// just completed.
func (b *lineBuffer) replaceAt(s string, cursor int) string {
	var out strings.Builder
	out.WriteString(b.moveEnd())
	for b.cursor > 0 {
		out.WriteString("\b \b")
		b.cursor--
	}
	b.runes = []rune(s)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(b.runes) {
		cursor = len(b.runes)
	}
	b.cursor = cursor
	out.WriteString(s)
	out.WriteString(strings.Repeat("\b", len(b.runes)-b.cursor))
	return out.String()
}
