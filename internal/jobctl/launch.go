package jobctl

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"go.uber.org/zap"
)

// Launch starts every Process in job, wiring pipes between pipeline
// stages and opening any per-process redirections, then hands the job
// to foreground or background tracking per spec §4.8's "Launch a Job"
// contract.
//
// A Process that redirects its own stdout to a file breaks the pipe
// chain: the following stage reads from that file instead of from a
// pipe, supporting `cmd1 > f | cmd2` sequencing.
func (e *Engine) Launch(job *Job) error {
	n := len(job.Processes)
	if n == 0 {
		return fmt.Errorf("psh: empty job")
	}

	var carryStdin *os.File // read end of the previous stage's pipe
	var carryFile string    // path the next stage should read from instead

	for i, p := range job.Processes {
		if len(p.Argv) == 0 {
			return fmt.Errorf("psh: empty command in pipeline")
		}

		cmd := exec.Command(p.Argv[0], p.Argv[1:]...)
		cmd.Args = p.Argv

		stdin, ownStdin, err := stageInput(i, p, carryStdin, carryFile)
		if err != nil {
			return err
		}
		cmd.Stdin = stdin

		var writeEnd *os.File
		var nextCarryFile string
		switch {
		case p.OutFile != "":
			flags := os.O_WRONLY | os.O_CREATE
			if p.Append {
				flags |= os.O_APPEND
			} else {
				flags |= os.O_TRUNC
			}
			f, err := os.OpenFile(p.OutFile, flags, 0644)
			if err != nil {
				closeIfFile(ownStdin)
				return fmt.Errorf("psh: %s: %w", p.OutFile, err)
			}
			cmd.Stdout = f
			writeEnd = f
			nextCarryFile = p.OutFile
		case i < n-1:
			r, w, err := os.Pipe()
			if err != nil {
				closeIfFile(ownStdin)
				return err
			}
			cmd.Stdout = w
			writeEnd = w
			carryStdin = r
		default:
			cmd.Stdout = os.Stdout
		}

		var stderrFile *os.File
		if p.ErrFile != "" {
			f, err := os.OpenFile(p.ErrFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				closeIfFile(ownStdin)
				closeIfFile(writeEnd)
				return fmt.Errorf("psh: %s: %w", p.ErrFile, err)
			}
			cmd.Stderr = f
			stderrFile = f
		} else {
			cmd.Stderr = os.Stderr
		}

		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true, Pgid: job.Pgid}

		if err := cmd.Start(); err != nil {
			closeIfFile(ownStdin)
			closeIfFile(writeEnd)
			closeIfFile(stderrFile)
			return fmt.Errorf("psh: %s: %w", p.Argv[0], err)
		}
		if job.Pgid == 0 {
			job.Pgid = cmd.Process.Pid
		}
		p.Pid = cmd.Process.Pid

		// The child has its own copy of every fd passed via cmd.Stdin/
		// Stdout/Stderr after Start; the shell-side copies must be
		// closed now so a downstream reader sees EOF once every writer
		// exits.
		closeIfFile(ownStdin)
		closeIfFile(writeEnd)
		closeIfFile(stderrFile)

		if nextCarryFile != "" {
			carryFile = nextCarryFile
			carryStdin = nil
		} else if p.OutFile == "" && i < n-1 {
			carryFile = ""
		}
	}

	e.log.Info("spawned job", jobField(job), zap.Int("pgid", job.Pgid))

	if e.Terminal != nil && !e.Terminal.Interactive() {
		return e.WaitForJob(job)
	}
	if job.Foreground {
		return e.ForegroundJob(job, false)
	}
	return e.BackgroundJob(job, false)
}

// stageInput resolves stdin for pipeline stage i. ownStdin is non-nil
// only when the caller opened a file the shell process must close after
// Start (an explicit redirection, a carried-over output file, or a pipe
// read end carried from the previous stage).
func stageInput(i int, p *Process, carryStdin *os.File, carryFile string) (io.Reader, *os.File, error) {
	switch {
	case p.InFile != "":
		f, err := os.OpenFile(p.InFile, os.O_RDONLY, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("psh: %s: %w", p.InFile, err)
		}
		return f, f, nil
	case carryFile != "":
		f, err := os.Open(carryFile)
		if err != nil {
			return nil, nil, fmt.Errorf("psh: %s: %w", carryFile, err)
		}
		return f, f, nil
	case carryStdin != nil:
		return carryStdin, carryStdin, nil
	case i == 0:
		return os.Stdin, nil, nil
	default:
		return nil, nil, fmt.Errorf("psh: internal error: missing pipe input")
	}
}

func closeIfFile(f *os.File) {
	if f != nil {
		f.Close()
	}
}
