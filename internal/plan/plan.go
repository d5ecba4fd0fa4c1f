// Package plan implements the Plan Builder: it walks an expanded token
// vector and emits the sequence of Wrappers (Jobs and operators) the Job
// Control Engine executes, per spec §4.7.
package plan

import (
	"strings"

	"github.com/shellcraft/psh/internal/jobctl"
)

var operators = map[string]jobctl.Operator{
	";":  jobctl.OpSeq,
	"&&": jobctl.OpAnd,
	"||": jobctl.OpOr,
}

func isRedirection(tok string) bool {
	switch tok {
	case "<", ">", ">>", "2>":
		return true
	}
	return false
}

// Build walks the expanded tokens and returns the plan's Wrappers. An
// empty token vector yields an empty plan. No error is returned: by the
// time tokens reach the Plan Builder, the Validator has already rejected
// anything syntactically unsound (spec §4.5's contract).
func Build(tokens []string) []jobctl.Wrapper {
	if len(tokens) == 0 {
		return nil
	}

	var wrappers []jobctl.Wrapper
	start := 0
	for end := 0; end < len(tokens); end++ {
		tok := tokens[end]

		if op, ok := operators[tok]; ok {
			wrappers = append(wrappers, jobctl.Wrapper{Job: buildJob(tokens[start:end])})
			wrappers = append(wrappers, jobctl.Wrapper{Op: op})
			start = end + 1
			continue
		}
		if tok == "&" {
			wrappers = append(wrappers, jobctl.Wrapper{Job: buildJob(tokens[start : end+1])})
			wrappers = append(wrappers, jobctl.Wrapper{Op: jobctl.OpBg})
			start = end + 1
			continue
		}
	}
	if start < len(tokens) {
		if j := buildJob(tokens[start:]); j != nil {
			wrappers = append(wrappers, jobctl.Wrapper{Job: j})
		}
	}
	return wrappers
}

// buildJob constructs a single Job from the tokens of one clause
// (between operator boundaries). A leading "!" sets the inversion flag;
// tokens are split on "|" into Processes; a REDIRECTION token consumes
// the following token as its path; a trailing "&" on the last argv
// entry marks the Job background and is stripped.
func buildJob(tokens []string) *jobctl.Job {
	if len(tokens) == 0 {
		return nil
	}

	inverted := false
	if tokens[0] == "!" {
		inverted = true
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return nil
	}

	j := jobctl.NewJob(strings.Join(tokens, " "))
	j.Inverted = inverted

	start := 0
	for i := 0; i <= len(tokens); i++ {
		if i == len(tokens) || tokens[i] == "|" {
			j.Processes = append(j.Processes, buildProcess(tokens[start:i]))
			start = i + 1
		}
	}

	last := j.Processes[len(j.Processes)-1]
	if n := len(last.Argv); n > 0 && endsWithAmp(last.Argv[n-1]) {
		j.Background = true
		last.Argv[n-1] = strings.TrimSuffix(last.Argv[n-1], "&")
		last.Argv[n-1] = strings.TrimSpace(last.Argv[n-1])
		if last.Argv[n-1] == "" {
			last.Argv = last.Argv[:n-1]
		}
	}
	j.Foreground = !j.Background

	return j
}

func endsWithAmp(s string) bool {
	return len(s) > 0 && s[len(s)-1] == '&'
}

// buildProcess turns one pipeline stage's tokens into a Process,
// unquoting plain tokens and consuming redirection targets.
func buildProcess(tokens []string) *jobctl.Process {
	p := &jobctl.Process{}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case isRedirection(tok) && i+1 < len(tokens):
			target := tokens[i+1]
			switch tok {
			case ">":
				p.OutFile = target
				p.Append = false
			case ">>":
				p.OutFile = target
				p.Append = true
			case "<":
				p.InFile = target
			case "2>":
				p.ErrFile = target
			}
			i++
		default:
			p.Argv = append(p.Argv, unquote(tok))
		}
	}
	return p
}

func unquote(tok string) string {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return tok[1 : len(tok)-1]
	}
	return tok
}
