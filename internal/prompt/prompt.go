// Package prompt expands PS1/PS2 escape sequences into the string
// displayed before each read, per spec §6's prompt-escape grammar.
package prompt

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultPS1 and DefaultPS2 are used when the shell variable is unset
// or empty, matching configure_prompt's def/def2 fallbacks.
const (
	DefaultPS1 = "$ "
	DefaultPS2 = "> "
)

// Environment is the narrow variable lookup PS1 and PS2 need.
type Environment interface {
	Get(name string) (string, bool)
}

// PS1 returns the expanded primary prompt.
func PS1(env Environment) string {
	return render("PS1", DefaultPS1, env)
}

// PS2 returns the expanded secondary (line-continuation) prompt.
func PS2(env Environment) string {
	return render("PS2", DefaultPS2, env)
}

func render(name, def string, env Environment) string {
	raw, ok := env.Get(name)
	if !ok || raw == "" {
		raw = def
	}
	return Expand(raw)
}

// Expand replaces every `-b` with the current git branch and every `-p`
// with the current directory's basename, leaving every other character
// literal, per _parse_ps_var.
func Expand(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '-' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'b':
			b.WriteString(gitBranch())
			i++
		case 'p':
			b.WriteString(currentDirBase())
			i++
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// currentDirBase returns the basename of the working directory, or ""
// if it cannot be determined, following _get_current_dir's behavior
// without its popen("pwd") subshell.
func currentDirBase() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Base(dir)
}

// gitBranch returns the current git branch, or "" outside a repository
// or when git is unavailable, following _get_current_git_branch's
// stderr-to-/dev/null redirection.
func gitBranch() string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(out), "\n")
}
