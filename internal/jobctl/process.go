// Package jobctl implements the Job Control Engine: launching pipelines
// as OS processes, tracking their process groups, moving them between
// foreground and background, and reaping their exit/stop status (spec
// §4.8).
package jobctl

import "syscall"

// Process is one child in a pipeline. It starts with Pid 0 (pre-fork);
// the Plan Builder fills in Argv and any redirections, and the engine
// fills in Pid, Completed, Stopped, and the decoded status as the
// process runs.
type Process struct {
	Argv []string

	Pid       int
	Completed bool
	Stopped   bool

	WaitStatus syscall.WaitStatus
	ExitStatus int
	Signaled   bool // true if ExitStatus came from a terminating signal, not exit()
	Signal     int

	InFile  string
	OutFile string
	ErrFile string
	Append  bool // true if OutFile should be opened O_APPEND rather than O_TRUNC
}
