// Package history implements the shell's History Store: a bounded log of
// committed command lines, loaded from and saved to a file, newest last.
package history

import (
	"bufio"
	"container/list"
	"os"
)

// MaxEntries is the hard cap on the number of retained history lines.
// Overflow evicts the oldest entry. Matches original_source/history.c's
// HISTORY_MAX_SIZE.
const MaxEntries = 128

// Store is a bounded, insertion-ordered log of command lines. It is
// backed by container/list, the idiomatic Go doubly-linked list, which
// gives every entry a stable *list.Element identity for the transient
// "current cursor" the line editor holds during history navigation (see
// Design Note 9).
type Store struct {
	l *list.List
}

// New returns an empty Store.
func New() *Store {
	return &Store{l: list.New()}
}

// Load reads command lines from path, newest last, capping at
// MaxEntries (oldest lines are dropped first if the file holds more).
// A missing file is not an error — the Store is simply left empty.
func Load(path string) (*Store, error) {
	s := New()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(lines) > MaxEntries {
		lines = lines[len(lines)-MaxEntries:]
	}
	for _, line := range lines {
		s.l.PushBack(line)
	}
	return s, nil
}

// Save overwrites path with the Store's lines, one per line, oldest
// first / newest last.
func (s *Store) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for e := s.l.Front(); e != nil; e = e.Next() {
		if _, err := w.WriteString(e.Value.(string) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Add commits a new command line, evicting the oldest entry if the
// Store is at MaxEntries.
func (s *Store) Add(line string) {
	if s.l.Len() >= MaxEntries {
		s.l.Remove(s.l.Front())
	}
	s.l.PushBack(line)
}

// Len returns the number of retained entries.
func (s *Store) Len() int { return s.l.Len() }

// Lines returns all retained lines, oldest first.
func (s *Store) Lines() []string {
	lines := make([]string, 0, s.l.Len())
	for e := s.l.Front(); e != nil; e = e.Next() {
		lines = append(lines, e.Value.(string))
	}
	return lines
}

// Cursor is a transient, per-session navigation position into a Store,
// held only while the line editor is active (Design Note 9: the
// "current cursor" is not part of the Store's own persistent state).
type Cursor struct {
	store *Store
	at    *list.Element // nil means "past newest" (empty buffer)
}

// NewCursor returns a Cursor positioned past the newest entry.
func (s *Store) NewCursor() *Cursor {
	return &Cursor{store: s}
}

// Reset repositions the cursor past the newest entry, as after a commit.
func (c *Cursor) Reset() { c.at = nil }

// Older moves toward older entries and returns the line there. At the
// oldest entry it stays put and returns that line again; it returns
// false only when the Store is empty.
func (c *Cursor) Older() (string, bool) {
	if c.store.l.Len() == 0 {
		return "", false
	}
	if c.at == nil {
		c.at = c.store.l.Back()
	} else if prev := c.at.Prev(); prev != nil {
		c.at = prev
	} else {
		return c.at.Value.(string), true
	}
	return c.at.Value.(string), true
}

// Newer moves toward newer entries. Returns ("", false) when moving past
// the newest entry — the caller should then present an empty buffer.
func (c *Cursor) Newer() (string, bool) {
	if c.at == nil {
		return "", false
	}
	c.at = c.at.Next()
	if c.at == nil {
		return "", false
	}
	return c.at.Value.(string), true
}
