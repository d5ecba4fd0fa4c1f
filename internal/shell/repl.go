package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/shellcraft/psh/internal/diag"
	"github.com/shellcraft/psh/internal/expand"
	"github.com/shellcraft/psh/internal/jobctl"
	"github.com/shellcraft/psh/internal/plan"
	"github.com/shellcraft/psh/internal/prompt"
	"github.com/shellcraft/psh/internal/token"
)

// Run drives the shell's regular cycle until end-of-input or an `exit`
// builtin, returning the process exit status, per main()'s do/while
// loop.
func (s *State) Run() int {
	for {
		s.Engine.UpdateStatus()
		s.Engine.NotificationSweep(s.announceStopped, s.announceSignal)

		ps := prompt.PS1(s.Env)
		if s.pendingLine != "" {
			ps = prompt.PS2(s.Env)
		}
		fmt.Fprint(s.out, ps)

		line, err := s.Editor.ReadLine(s.pendingLine)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			s.Log.Warn("read line failed", zap.Error(err))
			break
		}

		exited := s.handleLine(line)
		if exited {
			break
		}
	}
	return s.Engine.LastExitStatus
}

// handleLine runs one line through validation, expansion, planning,
// and execution, returning true if the shell should terminate.
func (s *State) handleLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		s.pendingLine = ""
		return false
	}

	tokens := token.Tokenize(line)
	cats := token.Categorize(tokens)
	result := token.Validate(cats)

	switch {
	case result.NeedsContinuation():
		s.pendingLine = line
		return false
	default:
		s.pendingLine = ""
	}

	if msg, isErr := result.SyntaxError(); isErr {
		s.diagf("psh: %s", msg)
		return false
	}

	s.History.Add(line)

	expanded := expand.Expand(tokens, expand.Context{
		Env:            s.Env,
		LastExitStatus: s.Engine.LastExitStatus,
		ShellPgid:      s.Terminal.ShellPgid(),
		LastBgPgid:     s.Engine.LastBgPgid,
	})

	wrappers := plan.Build(expanded)
	if len(wrappers) == 0 {
		return false
	}

	exited, err := s.Engine.RunPlan(wrappers, s.Builtins.Try)
	if err != nil {
		s.diagf("psh: %v", err)
		if s.Debug {
			diag.PrintErrChainDebug(s.errOut, err)
		}
	}
	return exited
}

// diagf prints a diagnostic line to stderr, per §7's "psh: <context>:
// <reason>" format, appending a trailing \r when the terminal is in raw
// mode so its line tracking stays aligned with the cursor position the
// line editor believes it owns.
func (s *State) diagf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.Terminal.IsRaw() {
		fmt.Fprintf(s.errOut, "%s\r\n", msg)
	} else {
		fmt.Fprintf(s.errOut, "%s\n", msg)
	}
}

// announceStopped reports a job's suspension to the user, per
// do_job_notification's "Stopped" status line. Ordinary completion has
// no printed line — the Notification sweep's completed branch is
// "remove and free" only.
func (s *State) announceStopped(j *jobctl.Job) {
	fmt.Fprintf(s.out, "[%d] Stopped\t%s\n", j.Pgid, j.Command)
}

// announceSignal reports a process's signal termination, per §7's
// "<pid>: Terminated by signal <N>" format.
func (s *State) announceSignal(pid, sig int) {
	fmt.Fprintf(s.out, "%d: Terminated by signal %d\n", pid, sig)
}
