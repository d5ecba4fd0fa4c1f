// Package builtin implements the shell's required built-in commands:
// cd, help, exit, jobs, fg, bg, source, set, unset — per spec §6 and
// builtin.c's func_arr/builtin_str dispatch table.
package builtin

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shellcraft/psh/internal/config"
	"github.com/shellcraft/psh/internal/jobctl"
	"github.com/shellcraft/psh/internal/shenv"
)

// Names lists the built-in commands in the reference shell's canonical
// order, as printed by `help`.
var Names = []string{"cd", "help", "exit", "jobs", "fg", "bg", "source", "set", "unset"}

// Dispatcher resolves and runs built-in commands against the shell's
// owned subsystems.
type Dispatcher struct {
	Engine     *jobctl.Engine
	Env        *shenv.Store
	ConfigPath string
	Out        io.Writer
	ErrOut     io.Writer
}

// New returns a Dispatcher wired to the shell's engine, environment
// store, and .pshrc path.
func New(engine *jobctl.Engine, env *shenv.Store, configPath string, out, errOut io.Writer) *Dispatcher {
	return &Dispatcher{Engine: engine, Env: env, ConfigPath: configPath, Out: out, ErrOut: errOut}
}

// Try dispatches job as a built-in if its command name matches one,
// per spec Design Note 9's three-variant BuiltinOutcome (replacing
// execute()'s overloaded integer return).
func (d *Dispatcher) Try(job *jobctl.Job) (jobctl.BuiltinOutcome, int, error) {
	argv := firstProcessArgv(job)
	if argv == nil {
		return jobctl.NotBuiltin, 0, nil
	}

	switch argv[0] {
	case "cd":
		return jobctl.HandledBuiltin, d.cd(argv), nil
	case "help":
		return jobctl.HandledBuiltin, d.help(), nil
	case "exit":
		return jobctl.ShellExit, d.exit(), nil
	case "jobs":
		return jobctl.HandledBuiltin, d.jobs(), nil
	case "fg":
		return jobctl.HandledBuiltin, d.fg(argv), nil
	case "bg":
		return jobctl.HandledBuiltin, d.bg(argv), nil
	case "source":
		return jobctl.HandledBuiltin, d.source(), nil
	case "set":
		return jobctl.HandledBuiltin, d.set(argv), nil
	case "unset":
		return jobctl.HandledBuiltin, d.unset(argv), nil
	default:
		return jobctl.NotBuiltin, 0, nil
	}
}

func firstProcessArgv(job *jobctl.Job) []string {
	if job == nil || len(job.Processes) != 1 {
		return nil
	}
	return job.Processes[0].Argv
}

func (d *Dispatcher) cd(argv []string) int {
	if len(argv) < 2 {
		fmt.Fprintln(d.ErrOut, `psh: expected argument to "cd"`)
		return 1
	}
	if err := os.Chdir(argv[1]); err != nil {
		fmt.Fprintf(d.ErrOut, "psh: %v\n", err)
		return 1
	}
	return 0
}

func (d *Dispatcher) help() int {
	fmt.Fprintln(d.Out, "PSH")
	fmt.Fprintln(d.Out, "Type program names and arguments, and hit enter.")
	fmt.Fprintln(d.Out, "The following are built in:")
	for _, name := range Names {
		fmt.Fprintf(d.Out, "  %s\n", name)
	}
	fmt.Fprintln(d.Out, `Use the "man" command for information on other programs.`)
	return 0
}

func (d *Dispatcher) exit() int {
	for _, j := range d.Engine.Jobs {
		if j.Pgid <= 0 {
			continue
		}
		if err := hangupJob(j.Pgid); err != nil {
			fmt.Fprintf(d.ErrOut, "psh: kill (SIGHUP): %v\n", err)
		}
	}
	return 0
}

func (d *Dispatcher) jobs() int {
	lastStopped := d.Engine.LastStopped()
	counter := 1
	for _, j := range d.Engine.Jobs {
		if j.Pgid == 0 {
			continue
		}
		state := "running"
		if j.Stopped() {
			state = "stopped"
		}
		marker := ""
		if lastStopped != nil {
			if j.Pgid == lastStopped.Pgid {
				marker = "+"
			} else {
				marker = "-"
			}
		}
		fmt.Fprintf(d.Out, "[%d] %s %s %d %s\n", counter, marker, state, j.Pgid, j.Command)
		counter++
	}
	return 0
}

func (d *Dispatcher) fg(argv []string) int { return d.continueJobs(argv, true) }
func (d *Dispatcher) bg(argv []string) int { return d.continueJobs(argv, false) }

// continueJobs implements psh_fg/psh_bg's shared shape: with no
// selector, target the most recently stopped-or-backgrounded job;
// otherwise treat each trailing argument as a `%N` job index or a raw
// pgid. A selector that resolves to nothing is a no-op (status 1) —
// the reference shell's `continue_job(NULL, ...)` would dereference a
// null job, which this shell does not reproduce.
func (d *Dispatcher) continueJobs(argv []string, foreground bool) int {
	if len(argv) < 2 {
		j := d.Engine.LastBackgroundOrStopped()
		if j == nil {
			return 1
		}
		return d.continueOne(j, foreground)
	}

	status := 0
	for _, arg := range argv[1:] {
		num, isIndex, ok := parseJobSelector(arg)
		if !ok {
			continue
		}
		var j *jobctl.Job
		if isIndex {
			j = d.Engine.FindByIndex(num)
		} else {
			j = d.Engine.FindByPgid(num)
		}
		if j == nil {
			status = 1
			continue
		}
		if s := d.continueOne(j, foreground); s != 0 {
			status = s
		}
	}
	return status
}

func (d *Dispatcher) continueOne(j *jobctl.Job, foreground bool) int {
	if err := d.Engine.Continue(j, foreground, j.Stopped()); err != nil {
		fmt.Fprintf(d.ErrOut, "psh: %v\n", err)
		return 1
	}
	return 0
}

// parseJobSelector parses a `%N` job index or a raw pgid, per
// _check_if_str_is_valid.
func parseJobSelector(s string) (num int, isIndex bool, ok bool) {
	isIndex = strings.HasPrefix(s, "%")
	digits := s
	if isIndex {
		digits = s[1:]
	}
	if digits == "" {
		return 0, false, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false, false
	}
	return n, isIndex, true
}

func (d *Dispatcher) source() int {
	vars, order, err := config.Load(d.ConfigPath)
	if err != nil {
		fmt.Fprintf(d.ErrOut, "psh: %s: %v\n", d.ConfigPath, err)
		return 1
	}
	d.Env.Load(vars, order)
	return 0
}

func (d *Dispatcher) set(argv []string) int {
	if len(argv) < 2 {
		fmt.Fprintln(d.ErrOut, "Not enough arguments")
		return 1
	}
	for _, arg := range argv[1:] {
		name, value, ok := splitAssignment(arg)
		if !ok {
			fmt.Fprintf(d.ErrOut, "Argument must be of type NAME=VALUE, but was %s\n", arg)
			return 1
		}
		d.Env.Set(name, value)
	}
	return 0
}

func (d *Dispatcher) unset(argv []string) int {
	if len(argv) < 2 {
		fmt.Fprintln(d.ErrOut, "Not enough arguments")
		return 1
	}
	for _, name := range argv[1:] {
		d.Env.Unset(name)
	}
	return 0
}

func splitAssignment(arg string) (name, value string, ok bool) {
	i := strings.IndexByte(arg, '=')
	if i < 0 {
		return "", "", false
	}
	return arg[:i], arg[i+1:], true
}
