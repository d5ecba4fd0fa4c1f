package plan

import (
	"testing"

	"github.com/shellcraft/psh/internal/jobctl"
)

func TestBuildSimpleCommand(t *testing.T) {
	w := Build([]string{"ls", "-la"})
	if len(w) != 1 || w[0].Job == nil {
		t.Fatalf("expected a single job wrapper, got %#v", w)
	}
	j := w[0].Job
	if len(j.Processes) != 1 {
		t.Fatalf("expected 1 process, got %d", len(j.Processes))
	}
	wantArgv := []string{"ls", "-la"}
	gotArgv := j.Processes[0].Argv
	for i, a := range wantArgv {
		if gotArgv[i] != a {
			t.Fatalf("argv = %#v, want %#v", gotArgv, wantArgv)
		}
	}
	if !j.Foreground || j.Background {
		t.Fatalf("expected foreground job by default")
	}
}

func TestBuildPipeline(t *testing.T) {
	w := Build([]string{"ls", "|", "grep", "x"})
	if len(w) != 1 {
		t.Fatalf("expected 1 wrapper, got %d", len(w))
	}
	j := w[0].Job
	if len(j.Processes) != 2 {
		t.Fatalf("expected 2 processes, got %d", len(j.Processes))
	}
}

func TestBuildSequenceOperator(t *testing.T) {
	w := Build([]string{"ls", ";", "pwd"})
	if len(w) != 3 {
		t.Fatalf("expected 3 wrappers (job, op, job), got %d", len(w))
	}
	if w[1].Op != jobctl.OpSeq {
		t.Fatalf("expected ; operator, got %q", w[1].Op)
	}
}

func TestBuildAndOrOperators(t *testing.T) {
	w := Build([]string{"make", "&&", "make", "install"})
	if len(w) != 3 || w[1].Op != jobctl.OpAnd {
		t.Fatalf("unexpected wrappers: %#v", w)
	}

	w = Build([]string{"make", "||", "echo", "failed"})
	if len(w) != 3 || w[1].Op != jobctl.OpOr {
		t.Fatalf("unexpected wrappers: %#v", w)
	}
}

func TestBuildBackgroundStandaloneToken(t *testing.T) {
	w := Build([]string{"sleep", "5", "&"})
	if len(w) != 2 {
		t.Fatalf("expected 2 wrappers (job, bg op), got %d", len(w))
	}
	if w[1].Op != jobctl.OpBg {
		t.Fatalf("expected & operator, got %q", w[1].Op)
	}
	j := w[0].Job
	if !j.Background || j.Foreground {
		t.Fatalf("expected job marked background")
	}
}

func TestBuildBackgroundGluedToken(t *testing.T) {
	w := Build([]string{"sleep", "5&"})
	j := w[0].Job
	if !j.Background {
		t.Fatalf("expected job marked background when & is glued to last arg")
	}
	argv := j.Processes[0].Argv
	if argv[len(argv)-1] != "5" {
		t.Fatalf("expected trailing & stripped, got argv=%#v", argv)
	}
}

func TestBuildInversion(t *testing.T) {
	w := Build([]string{"!", "false"})
	j := w[0].Job
	if !j.Inverted {
		t.Fatalf("expected inverted flag set")
	}
}

func TestBuildRedirections(t *testing.T) {
	w := Build([]string{"sort", "<", "in.txt", ">", "out.txt"})
	p := w[0].Job.Processes[0]
	if p.InFile != "in.txt" || p.OutFile != "out.txt" || p.Append {
		t.Fatalf("unexpected redirections: %#v", p)
	}
	for _, a := range p.Argv {
		if a == "<" || a == "in.txt" || a == ">" || a == "out.txt" {
			t.Fatalf("redirection tokens leaked into argv: %#v", p.Argv)
		}
	}
}

func TestBuildQuotedTokenUnquoted(t *testing.T) {
	w := Build([]string{"echo", `"a b c"`})
	argv := w[0].Job.Processes[0].Argv
	if argv[1] != "a b c" {
		t.Fatalf("expected unquoted argument, got %q", argv[1])
	}
}
