package jobctl

import (
	"go.uber.org/zap"
	"golang.org/x/term"
)

// TerminalController is the narrow surface the engine needs from
// internal/terminal: ownership handoff of the controlling terminal
// around a foreground job's lifetime. internal/terminal.Controller
// satisfies it.
type TerminalController interface {
	Interactive() bool
	EnableRaw() error
	DisableRaw() error
	HandToJob(pgid int) error
	Reclaim() (*term.State, error)
	RestoreJobModes(*term.State) error
}

// BuiltinOutcome is the three-variant result of trying to dispatch a Job
// as a built-in, replacing the reference shell's overloaded integer
// return from execute() (spec Design Note 9).
type BuiltinOutcome int

const (
	NotBuiltin BuiltinOutcome = iota
	HandledBuiltin
	ShellExit
)

// Engine is the Job Control Engine: it owns the active-job list and the
// shell's notion of "last exit status", and drives every Job through
// launch, foreground/background placement, and reaping.
type Engine struct {
	Jobs           []*Job
	Terminal       TerminalController
	LastExitStatus int
	LastBgPgid     int
	log            *zap.Logger
}

// NewEngine returns an Engine bound to a terminal controller and logger.
// term may be nil only in tests that never place a job in the
// foreground.
func NewEngine(term TerminalController, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Terminal: term, log: log}
}

// RunPlan executes a Plan Builder's Wrappers in order per spec §4.8's
// "Launch a plan" contract: the first Job is tried as a built-in before
// falling back to Launch; each later Job is gated by the Operator that
// precedes it against the current last-exit-status. tryBuiltin is given
// every Job wrapper (not just the first) because `;`/`&&`/`||`/`&` may
// each be followed by a built-in, not just an external command.
//
// Returns exited=true if a built-in requested shell termination.
func (e *Engine) RunPlan(wrappers []Wrapper, tryBuiltin func(*Job) (BuiltinOutcome, int, error)) (exited bool, err error) {
	i := 0
	for i < len(wrappers) {
		if i > 0 {
			op := wrappers[i-1].Op
			switch op {
			case OpAnd:
				if e.LastExitStatus != 0 {
					i++
					continue
				}
			case OpOr:
				if e.LastExitStatus == 0 {
					i++
					continue
				}
			case OpBg:
				e.LastExitStatus = 0
			}
		}

		w := wrappers[i]
		if w.Job == nil {
			i++
			continue
		}

		e.Jobs = append(e.Jobs, w.Job)

		outcome, status, berr := tryBuiltin(w.Job)
		switch outcome {
		case ShellExit:
			e.recordExit(w.Job, status)
			return true, berr
		case HandledBuiltin:
			e.recordExit(w.Job, status)
			if berr != nil {
				return false, berr
			}
		default:
			if launchErr := e.Launch(w.Job); launchErr != nil {
				e.recordExit(w.Job, 1)
				return false, launchErr
			}
			e.recordExit(w.Job, w.Job.LastExitStatus())
		}

		if w.Job.Background && w.Job.Pgid != 0 {
			e.LastBgPgid = w.Job.Pgid
		}
		i += 2 // skip the operator that follows
	}
	return false, nil
}

func (e *Engine) recordExit(j *Job, status int) {
	if j.Inverted {
		if status == 0 {
			status = 1
		} else {
			status = 0
		}
	}
	e.LastExitStatus = status
}

// NotificationSweep removes every completed Job (silently — the spec's
// "Notification sweep" bullet list has no print clause for the
// completed branch, only "remove and free"), announces newly stopped
// jobs exactly once via announceStopped, and removes any Job whose
// pgid never got assigned (a built-in run through the plan, or a
// launch that failed before forking), per spec §4.8. announceSignal is
// called once per completed process that ended via a signal,
// independent of the Stopped line, per §7's "<pid>: Terminated by
// signal <N>" requirement.
func (e *Engine) NotificationSweep(announceStopped func(j *Job), announceSignal func(pid, sig int)) {
	kept := e.Jobs[:0]
	for _, j := range e.Jobs {
		switch {
		case j.Completed():
			if announceSignal != nil {
				for _, p := range j.Processes {
					if p.Signaled {
						announceSignal(p.Pid, p.Signal)
					}
				}
			}
		case j.Pgid == 0:
			// builtin-only or rejected before forking
		case j.Stopped():
			if !j.Notified {
				if announceStopped != nil {
					announceStopped(j)
				}
				j.Notified = true
			}
			kept = append(kept, j)
		default:
			kept = append(kept, j)
		}
	}
	e.Jobs = kept
}

// FindByPgid returns the tracked Job with the given process group id.
func (e *Engine) FindByPgid(pgid int) *Job {
	for _, j := range e.Jobs {
		if j.Pgid == pgid {
			return j
		}
	}
	return nil
}

// FindByIndex returns the Job at 1-based position idx in the active-job
// list, as used by the `%N` job-spec syntax.
func (e *Engine) FindByIndex(idx int) *Job {
	if idx < 1 || idx > len(e.Jobs) {
		return nil
	}
	return e.Jobs[idx-1]
}

// LastStopped returns the most recently stopped tracked Job, or nil.
func (e *Engine) LastStopped() *Job {
	var found *Job
	for _, j := range e.Jobs {
		if j.Stopped() {
			found = j
		}
	}
	return found
}

// LastBackgroundOrStopped returns the most recently tracked Job that is
// either stopped or running in the background — the implicit target of
// a bare `fg`/`bg` with no job-spec argument, per
// _find_last_stopped_or_bg_job.
func (e *Engine) LastBackgroundOrStopped() *Job {
	var found *Job
	for _, j := range e.Jobs {
		if j.Stopped() || j.Background {
			found = j
		}
	}
	return found
}
