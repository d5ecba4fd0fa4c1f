package expand

import "path/filepath"

// isGlobExpandable reports whether tok contains a glob metacharacter
// (`*` or `?`; backslash escapes are not recognized), grounded on
// original_source/env.c's _is_glob_expandable.
func isGlobExpandable(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if tok[i] == '*' || tok[i] == '?' {
			return true
		}
	}
	return false
}

// expandGlob replaces tok with its sorted filesystem matches. A pattern
// with zero matches is left unchanged — glob failure is not an error per
// spec §7's expansion error category.
func expandGlob(tok string) []string {
	matches, err := filepath.Glob(tok)
	if err != nil || len(matches) == 0 {
		return []string{tok}
	}
	return matches
}
