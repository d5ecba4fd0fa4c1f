package builtin

import "syscall"

// hangupJob sends SIGHUP to every process in pgid's process group, used
// by the `exit` builtin to notify outstanding jobs before the shell
// terminates, per psh_exit's killpg loop.
func hangupJob(pgid int) error {
	return syscall.Kill(-pgid, syscall.SIGHUP)
}
