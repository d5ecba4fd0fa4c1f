package jobctl

import (
	"github.com/google/uuid"
	"golang.org/x/term"
)

// Job is a pipeline plus its control state: the spec's central unit of
// job-control bookkeeping. A Job owns its Processes for its whole
// lifetime, from Plan Builder construction through removal by the
// notification sweep once every Process has completed.
type Job struct {
	Command   string
	Processes []*Process

	Pgid     int // 0 until the first child is forked
	Notified bool
	TermModes *term.State // saved terminal attributes, for a later fg/bg continuation

	StdinFd, StdoutFd, StderrFd int

	Inverted   bool // leading "!"
	Background bool // pipeline ended in "&"
	Foreground bool // desired foreground state, opposite of Background at launch

	// TraceID correlates this Job's log lines across its lifetime. It is
	// an in-memory identifier only — never persisted to the history file,
	// which stores raw command text exactly as spec §6 describes it.
	TraceID uuid.UUID
}

// NewJob returns a Job for command, with the standard fds defaulted to
// the shell's own stdin/stdout/stderr (fd 0/1/2).
func NewJob(command string) *Job {
	return &Job{
		Command:  command,
		StdinFd:  0,
		StdoutFd: 1,
		StderrFd: 2,
		TraceID:  uuid.New(),
	}
}

// Completed reports whether every Process in the Job has exited.
func (j *Job) Completed() bool {
	for _, p := range j.Processes {
		if !p.Completed {
			return false
		}
	}
	return true
}

// Stopped reports whether every Process is completed-or-stopped and at
// least one is stopped.
func (j *Job) Stopped() bool {
	anyStopped := false
	for _, p := range j.Processes {
		if p.Completed {
			continue
		}
		if !p.Stopped {
			return false
		}
		anyStopped = true
	}
	return anyStopped
}

// LastExitStatus returns the exit status of the job's final process,
// used by the shell as its own last-exit-status after a synchronous
// pipeline.
func (j *Job) LastExitStatus() int {
	if len(j.Processes) == 0 {
		return 0
	}
	return j.Processes[len(j.Processes)-1].ExitStatus
}
