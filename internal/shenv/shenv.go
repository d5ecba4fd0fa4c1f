// Package shenv implements the shell's Environment Store: an ordered
// mapping of shell variable names to string values, layered over the
// process environment.
package shenv

import "os"

// entry is one name/value pair. Kept as a slice element (not a linked
// list node) so Store owns a single contiguous, ordered sequence with
// stable indices — see Design Note 9 on re-expressing pointer-heavy
// linked lists as owned sequences.
type entry struct {
	name  string
	value string
}

// Store is an ordered set of shell variables. A name is unique; Set on
// an existing name overwrites the value in place. Lookups that miss
// fall back to the process environment.
type Store struct {
	entries []entry
	index   map[string]int // name -> position in entries
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

// Get returns the value of name, consulting the process environment if
// the Store has no entry for it. ok is false only when neither has it.
func (s *Store) Get(name string) (string, bool) {
	if i, found := s.index[name]; found {
		return s.entries[i].value, true
	}
	if v, found := os.LookupEnv(name); found {
		return v, true
	}
	return "", false
}

// Set overwrites the value for name in place, or appends a new entry.
func (s *Store) Set(name, value string) {
	if i, found := s.index[name]; found {
		s.entries[i].value = value
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, entry{name: name, value: value})
}

// Unset removes name from the Store. It is a no-op if the name was never
// set via Set (process-environment-only variables are left alone; they
// are not part of this Store's ordered set).
func (s *Store) Unset(name string) {
	i, found := s.index[name]
	if !found {
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.index, name)
	for n, e := range s.entries[i:] {
		s.index[e.name] = i + n
	}
}

// Names returns the Store's variable names in insertion order.
func (s *Store) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}
	return names
}

// Load merges name/value pairs into the Store, in the order given,
// overwriting any existing value. Used to apply the .pshrc contents
// returned by internal/config.Load, at startup (shell.New) and by the
// "source" builtin.
func (s *Store) Load(vars map[string]string, order []string) {
	for _, name := range order {
		if v, ok := vars[name]; ok {
			s.Set(name, v)
		}
	}
}
