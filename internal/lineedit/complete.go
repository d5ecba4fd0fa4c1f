package lineedit

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shellcraft/psh/internal/token"
)

// completionState is the tab-press cycling state held across repeated
// Tab key presses against the same word, grounded on autocomplete's
// tab_count/token_to_complete/possible_completions globals.
type completionState struct {
	active      bool
	tabCount    int
	completions []string
	wordStart   int
	wordEnd     int
}

func newCompletionState() *completionState { return &completionState{} }

func (s *completionState) reset() { *s = completionState{} }

// completeWord handles one Tab key press: on the first press for a
// given word it gathers candidates (command names from PATH, or glob
// matches for an argument), then cycles through them on each
// subsequent press, per autocomplete's completion_count modulo.
func (e *Editor) completeWord(buf *lineBuffer, s *completionState) string {
	if !s.active {
		line := buf.String()
		idx, start, end := cursorOnTokenWithIndex(line, buf.cursor)

		tok := ""
		if idx >= 0 {
			fields := token.Tokenize(line)
			if idx < len(fields) {
				tok = fields[idx]
			}
		}
		category := tokenCategoryAt(line, idx)

		var candidates []string
		var err error
		if category == token.CMD {
			candidates, err = commandCandidates(tok + "*")
		} else {
			candidates, err = argCandidates(tok + "*")
		}
		if err != nil || len(candidates) == 0 {
			return ""
		}

		s.active = true
		s.completions = candidates
		s.wordStart = start
		s.wordEnd = end
		s.tabCount = 0
	}

	if len(s.completions) == 0 {
		return ""
	}
	word := s.completions[s.tabCount%len(s.completions)]
	s.tabCount++

	line := []rune(buf.String())
	start, end := s.wordStart, s.wordEnd
	if end > len(line) {
		end = len(line)
	}
	prefix := string(line[:start])
	suffix := string(line[end:])
	return buf.replaceAt(prefix+word+suffix, len([]rune(prefix+word)))
}

// cursorOnTokenWithIndex locates the whitespace-delimited token the
// cursor sits within, returning its index into Tokenize's result, or
// -1 (cursor past the last token) or -2 (cursor in inter-token
// whitespace) as sentinels, per cursor_on_token_with_index.
func cursorOnTokenWithIndex(line string, cursorPos int) (tokenIndex, start, end int) {
	runes := []rune(line)
	n := len(runes)
	tokCounter := -1
	start, end = 0, 0
	for i := 0; i < n; i++ {
		if isBlank(runes[i]) {
			end = i
			if start != end {
				tokCounter++
				if start <= cursorPos && cursorPos <= end {
					return tokCounter, start, end
				}
			} else if i == cursorPos {
				return -2, start, start
			}
			start = i + 1
		} else if i > 0 && runes[i] == ';' {
			tokCounter++
		}
	}
	if start < n {
		return tokCounter + 1, start, n
	}
	return -1, start, start
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' }

// tokenCategoryAt resolves the grammatical category of the token at
// idx (or the sentinel category implied by -1/-2), per autocomplete's
// tok_category derivation.
func tokenCategoryAt(line string, idx int) token.Category {
	cats := token.Categorize(token.Tokenize(line))
	switch {
	case idx == -2:
		return token.ARG
	case idx == -1:
		var last token.Category
		for _, c := range cats {
			if c == token.END {
				break
			}
			last = c
		}
		switch last {
		case token.BgOper, token.INVERSION, token.PIPE, token.OPER, token.LineContinuation:
			return token.CMD
		default:
			return token.ARG
		}
	case idx >= 0 && idx < len(cats):
		return cats[idx]
	default:
		return token.ARG
	}
}

// argCandidates expands pattern as a filesystem glob, for argument
// position completion (create_argv).
func argCandidates(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// commandCandidates gathers candidate command names matching pattern:
// executables in the current directory for a `./`-prefixed pattern
// (create_exec_list), otherwise basenames matching pattern across every
// PATH directory, fanned out concurrently with errgroup
// (create_cmd_argv/get_path_directories).
func commandCandidates(pattern string) ([]string, error) {
	if strings.HasPrefix(pattern, "./") {
		return executableCandidates(pattern)
	}

	dirs := pathDirectories()
	if len(dirs) == 0 {
		return nil, nil
	}

	results := make([][]string, len(dirs))
	var g errgroup.Group
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return err
			}
			names := make([]string, len(matches))
			for j, m := range matches {
				names[j] = filepath.Base(m)
			}
			results[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, names := range results {
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func executableCandidates(pattern string) ([]string, error) {
	rest := strings.TrimPrefix(pattern, "./")
	matches, err := filepath.Glob(rest)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range matches {
		if isExecutable(m) {
			out = append(out, "./"+m)
		}
	}
	return out, nil
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&0111 != 0
}

func pathDirectories() []string {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return nil
	}
	var dirs []string
	for _, d := range strings.Split(pathEnv, ":") {
		if d == "" {
			continue
		}
		if _, err := os.Stat(d); err == nil {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
