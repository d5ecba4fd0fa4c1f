package jobctl

import (
	"fmt"
	"syscall"

	"go.uber.org/zap"
)

// ForegroundJob implements spec §4.8's "Foreground-job(cont)": hand the
// terminal to the job's process group, disable raw mode (children
// misbehave in raw mode), optionally resume a stopped job with SIGCONT,
// block until it stops or completes, then reclaim the terminal for the
// shell and re-enable raw mode — the shell's steady state between
// commands — now that the foreground wait is over.
func (e *Engine) ForegroundJob(j *Job, cont bool) error {
	j.Background = false

	if e.Terminal != nil {
		if err := e.Terminal.HandToJob(j.Pgid); err != nil {
			e.log.Warn("failed to hand terminal to job", jobField(j), errField(err))
		}
		if err := e.Terminal.DisableRaw(); err != nil {
			e.log.Warn("failed to disable raw mode", errField(err))
		}
	}

	if cont {
		if e.Terminal != nil {
			if err := e.Terminal.RestoreJobModes(j.TermModes); err != nil {
				e.log.Warn("failed to restore job terminal modes", jobField(j), errField(err))
			}
		}
		if err := syscall.Kill(-j.Pgid, syscall.SIGCONT); err != nil {
			e.log.Warn("failed to send SIGCONT", jobField(j), errField(err))
		}
	}

	waitErr := e.WaitForJob(j)

	if e.Terminal != nil {
		state, err := e.Terminal.Reclaim()
		if err != nil {
			e.log.Warn("failed to reclaim terminal", errField(err))
		}
		j.TermModes = state

		// The shell's own raw mode was switched off above so the
		// foreground job could run cooked; restore it now that the
		// terminal is back, so the next ReadLine finds raw mode on.
		// This must happen even if the wait itself failed, or the
		// shell is left stuck in cooked mode for the rest of the
		// session.
		if err := e.Terminal.EnableRaw(); err != nil {
			e.log.Warn("failed to re-enable raw mode", errField(err))
		}
	}
	return waitErr
}

// BackgroundJob implements spec §4.8's "Background-job(cont)": resume a
// stopped job with SIGCONT if requested, mark it backgrounded, and
// return without waiting.
func (e *Engine) BackgroundJob(j *Job, cont bool) error {
	if cont {
		if err := syscall.Kill(-j.Pgid, syscall.SIGCONT); err != nil {
			e.log.Warn("failed to send SIGCONT", jobField(j), errField(err))
		}
	}
	j.Background = true
	return nil
}

// Continue implements spec §4.8's "Continue(j, foreground, send_cont)":
// clear every process's stopped flag and the job's notified flag, then
// dispatch to ForegroundJob or BackgroundJob.
func (e *Engine) Continue(j *Job, foreground, sendCont bool) error {
	e.log.Info("continuing job", jobField(j), zap.Bool("foreground", foreground))
	for _, p := range j.Processes {
		p.Stopped = false
	}
	j.Notified = false
	if foreground {
		return e.ForegroundJob(j, sendCont)
	}
	return e.BackgroundJob(j, sendCont)
}

// WaitForJob implements spec §4.8's "Wait-for-job(j)": loop reaping
// status for j's process group until every process is stopped or
// completed.
func (e *Engine) WaitForJob(j *Job) error {
	for !j.Stopped() && !j.Completed() {
		var status syscall.WaitStatus
		pid, err := syscall.Wait4(-j.Pgid, &status, syscall.WUNTRACED, nil)
		if err != nil {
			if err == syscall.ECHILD {
				return nil
			}
			return fmt.Errorf("psh: wait: %w", err)
		}
		e.markProcessStatus(pid, status)
	}
	return nil
}

// UpdateStatus implements spec §4.8's "Update-status": a non-blocking
// drain used between commands to pick up background job state changes
// without stalling the prompt.
func (e *Engine) UpdateStatus() {
	for {
		var status syscall.WaitStatus
		pid, err := syscall.Wait4(-1, &status, syscall.WNOHANG|syscall.WUNTRACED, nil)
		if err != nil || pid <= 0 {
			return
		}
		e.markProcessStatus(pid, status)
	}
}

// markProcessStatus implements spec §4.8's "Mark-process-status(pid,
// status)": locate the Process by pid across every tracked Job and
// record its stopped/completed state.
func (e *Engine) markProcessStatus(pid int, status syscall.WaitStatus) {
	for _, j := range e.Jobs {
		for _, p := range j.Processes {
			if p.Pid != pid {
				continue
			}
			p.WaitStatus = status
			switch {
			case status.Stopped():
				p.Stopped = true
			default:
				p.Completed = true
				switch {
				case status.Exited():
					p.ExitStatus = status.ExitStatus()
				case status.Signaled():
					p.ExitStatus = 128 + int(status.Signal())
					p.Signaled = true
					p.Signal = int(status.Signal())
					e.log.Info("process terminated by signal",
						jobField(j), zap.Int("pid", pid), zap.String("signal", status.Signal().String()))
				}
			}
			return
		}
	}
}
