// Package expand implements the Expander: the token-rewriting pass that
// runs between the Validator and the Plan Builder (spec §4.6). Each of
// tilde, variable, brace, and glob expansion is applied in turn; brace
// and glob expansion may turn one token into many, so the token vector is
// rebuilt as a new slice rather than edited element by element.
package expand

// Environment is the narrow variable-lookup surface the Expander needs.
// internal/shenv.Store satisfies it.
type Environment interface {
	Get(name string) (string, bool)
}

// Context carries the shell state referenced by the special parameter
// expansions $?, $$, and $!, alongside the variable store used for
// ordinary $NAME lookups.
type Context struct {
	Env            Environment
	LastExitStatus int
	ShellPgid      int
	LastBgPgid     int // 0 if there is no background job
}

// Expand returns a new token slice built by applying tilde, variable,
// brace, and glob expansion to each token in order; the input slice is
// not modified. A token may expand into zero or more
// output tokens (brace and glob expansion can multiply it; an unmatched
// glob leaves it as one).
func Expand(tokens []string, ctx Context) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		quoted := isFullyQuoted(tok)
		t := tok
		if !quoted {
			t = expandTilde(t)
		}
		t = expandVariable(t, ctx)

		braced := expandBrace(t)
		for _, b := range braced {
			if !quoted && isGlobExpandable(b) {
				out = append(out, expandGlob(b)...)
			} else {
				out = append(out, b)
			}
		}
	}
	return out
}

func isFullyQuoted(tok string) bool {
	return len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"'
}
