// Package lineedit implements the Line Editor: reading one logical
// command line from the terminal in raw mode, with cursor motion,
// editing shortcuts, history navigation, and tab completion, per
// spec §4.3.
package lineedit

import (
	"bufio"
	"io"
	"strings"

	"github.com/shellcraft/psh/internal/history"
)

// Editor reads command lines from in, echoing edits to out, per
// read_line's raw-mode key loop. Raw mode itself is the shell's
// persistent steady state between commands (enabled once at startup,
// restored by the Job Control Engine's foreground-job contract after
// each foreground wait) — ReadLine does not toggle it, matching
// original_source/main.c's design where raw mode is never switched off
// just to read another line.
type Editor struct {
	hist *history.Cursor
	in   *bufio.Reader
	out  io.Writer
}

// New returns an Editor. hist may be nil to disable history recall
// (e.g. for a non-interactive Editor that never sees arrow keys).
func New(hist *history.Cursor, in io.Reader, out io.Writer) *Editor {
	return &Editor{hist: hist, in: bufio.NewReader(in), out: out}
}

// ReadLine reads one logical line, assuming the terminal is already in
// raw mode. initial is a possibly-nonempty buffer carried over from a
// prior line-continuation read: its trailing `\` (if any) is replaced
// with a space, otherwise a space is appended, before further input is
// appended onto it — matching read_line's continuation splice.
func (e *Editor) ReadLine(initial string) (string, error) {
	if initial != "" {
		if strings.HasSuffix(initial, "\\") {
			initial = initial[:len(initial)-1] + " "
		} else {
			initial += " "
		}
	}
	buf := newLineBuffer(initial)
	if e.hist != nil {
		e.hist.Reset()
	}
	comp := newCompletionState()

	for {
		r, err := e.readByte()
		if err != nil {
			return "", err
		}

		if r != '\t' {
			comp.reset()
		}

		switch {
		case r == '\n' || r == '\r':
			e.write("\n")
			return buf.String(), nil
		case r == 127:
			e.write(buf.backspace())
		case r == 21:
			e.write(buf.deleteToStart())
		case r == 11:
			e.write(buf.deleteToEnd())
		case r == 1:
			e.write(buf.moveHome())
		case r == 5:
			e.write(buf.moveEnd())
		case r == 23:
			e.write(buf.deleteWord())
		case r == '\t':
			e.write(e.completeWord(buf, comp))
		case r >= 32 && r <= 126:
			e.write(buf.insert(r))
		case r == 27:
			e.handleEscape(buf)
		}
	}
}

func (e *Editor) readByte() (byte, error) {
	return e.in.ReadByte()
}

func (e *Editor) write(s string) {
	if s == "" {
		return
	}
	io.WriteString(e.out, s)
}

// handleEscape consumes the two bytes following ESC (27) and dispatches
// arrow keys, following read_line's `27, 91, <A|B|C|D>` sequence.
func (e *Editor) handleEscape(buf *lineBuffer) {
	b1, err := e.readByte()
	if err != nil || b1 != '[' {
		return
	}
	b2, err := e.readByte()
	if err != nil {
		return
	}
	switch b2 {
	case 'A':
		e.recallOlder(buf)
	case 'B':
		e.recallNewer(buf)
	case 'C':
		e.write(buf.moveRight())
	case 'D':
		e.write(buf.moveLeft())
	}
}

func (e *Editor) recallOlder(buf *lineBuffer) {
	if e.hist == nil {
		return
	}
	line, ok := e.hist.Older()
	if !ok {
		return
	}
	e.write(buf.replace(line))
}

func (e *Editor) recallNewer(buf *lineBuffer) {
	if e.hist == nil {
		return
	}
	line, ok := e.hist.Newer()
	if !ok {
		line = ""
	}
	e.write(buf.replace(line))
}
