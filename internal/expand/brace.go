package expand

import (
	"strconv"
	"strings"
)

// expandBrace expands the first well-formed {...} group found in tok and
// recurses on the results, so a token with multiple groups is expanded
// left to right. A group is well-formed only if its content is either a
// comma-separated list of alphanumeric elements or a decimal integer
// range M..N; anything else is left as literal text, matching spec §4.6.
func expandBrace(tok string) []string {
	open := strings.IndexByte(tok, '{')
	if open == -1 {
		return []string{tok}
	}
	rel := strings.IndexByte(tok[open+1:], '}')
	if rel == -1 {
		return []string{tok}
	}
	closeIdx := open + 1 + rel
	if closeIdx-open <= 1 {
		return []string{tok}
	}

	content := tok[open+1 : closeIdx]
	items, ok := braceItems(content)
	if !ok {
		return []string{tok}
	}

	prefix := tok[:open]
	suffix := tok[closeIdx+1:]
	var out []string
	for _, item := range items {
		out = append(out, expandBrace(prefix+item+suffix)...)
	}
	return out
}

func braceItems(content string) ([]string, bool) {
	if items, ok := braceRange(content); ok {
		return items, true
	}
	return braceList(content)
}

// braceRange handles M..N, an inclusive decimal integer range, ascending
// or descending.
func braceRange(content string) ([]string, bool) {
	sep := strings.Index(content, "..")
	if sep == -1 {
		return nil, false
	}
	lo, err1 := strconv.Atoi(content[:sep])
	hi, err2 := strconv.Atoi(content[sep+2:])
	if err1 != nil || err2 != nil {
		return nil, false
	}

	var items []string
	if lo <= hi {
		for n := lo; n <= hi; n++ {
			items = append(items, strconv.Itoa(n))
		}
	} else {
		for n := lo; n >= hi; n-- {
			items = append(items, strconv.Itoa(n))
		}
	}
	return items, true
}

// braceList handles a,b,c: a comma-separated list whose elements must be
// alphanumeric, or the braces are left as literal text.
func braceList(content string) ([]string, bool) {
	if !strings.Contains(content, ",") {
		return nil, false
	}
	parts := strings.Split(content, ",")
	for _, p := range parts {
		if p == "" || !isAlphanumeric(p) {
			return nil, false
		}
	}
	return parts, true
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
