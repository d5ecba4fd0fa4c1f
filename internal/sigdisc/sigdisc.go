// Package sigdisc implements the shell's Signal Discipline: the
// ignore-set of interactive signals and SIGWINCH notification described
// in spec §4.2. SIGCHLD is left at its default disposition; child status
// is collected by internal/jobctl's waits, not here.
package sigdisc

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Discipline owns the shell's signal handling for its own process.
// SIGINT, SIGQUIT, SIGTSTP, SIGTTIN, SIGTTOU are drained harmlessly
// rather than acted on; SIGWINCH only flips a flag the main loop polls.
//
// Deliberately NOT signal.Ignore: Ignore installs a real SIG_IGN
// disposition at the kernel level, which survives exec into a child and
// would require an explicit reset there — something os/exec gives us no
// hook to do between fork and exec. signal.Notify instead installs a Go
// handler, which is a "caught" signal in POSIX terms and is reset to
// SIG_DFL automatically on exec. So every forked child starts with
// default dispositions for this entire set with no extra code — see
// DESIGN.md.
type Discipline struct {
	ignored  chan os.Signal
	winch    chan os.Signal
	gotWinch atomic.Bool
	done     chan struct{}
}

// Install starts draining the ignore-set and watching for SIGWINCH.
// Call Stop to release the underlying channels.
func Install() *Discipline {
	d := &Discipline{
		ignored: make(chan os.Signal, 16),
		winch:   make(chan os.Signal, 4),
		done:    make(chan struct{}),
	}
	signal.Notify(d.ignored, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTSTP, syscall.SIGTTIN, syscall.SIGTTOU)
	signal.Notify(d.winch, syscall.SIGWINCH)

	go func() {
		for {
			select {
			case <-d.ignored:
				// Drained, not acted on: the shell survives Ctrl-C/Ctrl-Z
				// delivered while it is the foreground process group.
			case <-d.winch:
				d.gotWinch.Store(true)
			case <-d.done:
				return
			}
		}
	}()
	return d
}

// Stop releases the signal channels.
func (d *Discipline) Stop() {
	close(d.done)
	signal.Stop(d.ignored)
	signal.Stop(d.winch)
}

// ConsumeWinch reports whether a window resize was observed since the
// last call, clearing the flag.
func (d *Discipline) ConsumeWinch() bool {
	return d.gotWinch.Swap(false)
}

// HangupAll sends SIGHUP to the process group pgid and returns the kill
// error, if any; it does nothing for pgid <= 0. The `exit` builtin sends
// its SIGHUPs through internal/builtin's own hangupJob, not through this
// function.
func HangupAll(pgid int) error {
	if pgid <= 0 {
		return nil
	}
	return syscall.Kill(-pgid, syscall.SIGHUP)
}
