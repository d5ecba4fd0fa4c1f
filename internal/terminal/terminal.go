// Package terminal implements the Terminal Controller: ownership of the
// controlling terminal's attribute state and the shell's process-group
// ownership of it, per spec §4.1.
//
// Raw-mode switching is grounded on golang.org/x/term (the pure-Go idiom
// the wider example pack uses for this, replacing kylelemons-goat's
// cgo-based termios binding). Foreground process-group handoff is
// grounded on the tcgetpgrp/tcsetpgrp helpers in the atinylittleshell/gsh
// reference job-control handler.
package terminal

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Controller owns the terminal attached to fd (normally os.Stdin's fd)
// and the shell's claim to being its foreground process group.
type Controller struct {
	fd          int
	interactive bool
	cooked      *term.State // saved cooked-mode attributes, nil if non-interactive
	raw         bool
	shellPgid   int
	log         *zap.Logger
}

// New returns a Controller for fd. Non-interactive mode is detected when
// fd is not a tty, or when PSH_NON_INTERACTIVE is set in the environment
// (a designated escape hatch for test harnesses and scripted input).
func New(fd int, log *zap.Logger) *Controller {
	_, forced := os.LookupEnv("PSH_NON_INTERACTIVE")
	return &Controller{
		fd:          fd,
		interactive: term.IsTerminal(fd) && !forced,
		log:         log,
	}
}

// Interactive reports whether this Controller manages a real terminal.
func (c *Controller) Interactive() bool { return c.interactive }

// Initialize claims the controlling terminal for the shell's own
// process group. In non-interactive mode this is a no-op — job-control
// bookkeeping still runs, but nothing touches the tty.
//
// The wait-for-foreground loop mirrors the classic job-control
// bootstrap: repeatedly signal our own group with SIGTTIN until the
// kernel reports us as the terminal's foreground group. shell.New calls
// Initialize before sigdisc.Install, so SIGTTIN still has its default
// disposition here and stops the shell while it is in the background.
func (c *Controller) Initialize() error {
	if !c.interactive {
		return nil
	}

	shellPgid := unix.Getpgrp()
	for {
		fg, err := c.foregroundPgrp()
		if err != nil {
			return err
		}
		if fg == shellPgid {
			break
		}
		_ = unix.Kill(-shellPgid, unix.SIGTTIN)
	}

	if err := unix.Setpgid(0, 0); err != nil {
		return err
	}
	shellPgid = unix.Getpgrp()
	c.shellPgid = shellPgid

	if err := c.setForegroundPgrp(shellPgid); err != nil {
		return err
	}

	state, err := term.GetState(c.fd)
	if err != nil {
		return err
	}
	c.cooked = state
	return nil
}

// ShellPgid returns the shell's own process group id, valid after
// Initialize (or 0 in non-interactive mode until first queried).
func (c *Controller) ShellPgid() int {
	if c.shellPgid == 0 {
		c.shellPgid = unix.Getpgrp()
	}
	return c.shellPgid
}

// EnableRaw switches the terminal to raw mode for line editing. No-op
// in non-interactive mode.
func (c *Controller) EnableRaw() error {
	if !c.interactive {
		return nil
	}
	_, err := term.MakeRaw(c.fd)
	if err == nil {
		c.raw = true
	}
	return err
}

// DisableRaw restores the saved cooked-mode attributes. Foreground jobs
// must run with raw mode off — children misbehave in raw mode — so this
// is called before every foreground wait. No-op in non-interactive mode.
func (c *Controller) DisableRaw() error {
	c.raw = false
	if !c.interactive || c.cooked == nil {
		return nil
	}
	return term.Restore(c.fd, c.cooked)
}

// IsRaw reports whether the terminal is currently in raw mode, so
// diagnostics printed mid-line-edit can append a trailing \r to keep
// the terminal's line tracking aligned.
func (c *Controller) IsRaw() bool { return c.raw }

// HandToJob gives terminal ownership to pgid. No-op in non-interactive
// mode.
func (c *Controller) HandToJob(pgid int) error {
	if !c.interactive {
		return nil
	}
	return c.setForegroundPgrp(pgid)
}

// Reclaim takes the terminal back for the shell, returning the
// outgoing job's current terminal attributes (to be saved on the Job
// for a later `fg`/`bg` continuation) and making the shell's group the
// foreground group again. It does not change the terminal attributes;
// the caller (jobctl's ForegroundJob) re-enables raw mode afterwards.
// No-op (returns nil, nil) in non-interactive mode.
func (c *Controller) Reclaim() (*term.State, error) {
	if !c.interactive {
		return nil, nil
	}
	jobState, err := term.GetState(c.fd)
	if err != nil {
		return nil, err
	}
	if err := c.setForegroundPgrp(c.ShellPgid()); err != nil {
		return jobState, err
	}
	return jobState, nil
}

// RestoreJobModes re-applies a job's previously saved terminal
// attributes, used when continuing a stopped job with SIGCONT.
func (c *Controller) RestoreJobModes(state *term.State) error {
	if !c.interactive || state == nil {
		return nil
	}
	return term.Restore(c.fd, state)
}

// Size returns the terminal's current width and height, backing
// SIGWINCH-driven geometry queries.
func (c *Controller) Size() (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(c.fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

func (c *Controller) foregroundPgrp() (int, error) {
	return unix.IoctlGetInt(c.fd, unix.TIOCGPGRP)
}

func (c *Controller) setForegroundPgrp(pgid int) error {
	return unix.IoctlSetPointerInt(c.fd, unix.TIOCSPGRP, pgid)
}
