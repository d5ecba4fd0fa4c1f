// Package shell owns the shell's top-level State object, wiring every
// subsystem together, and the REPL main loop that drives a command
// line from raw input to a launched (or built-in) Job, per spec §9's
// "owned state object instead of globals" design note.
package shell

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/shellcraft/psh/internal/builtin"
	"github.com/shellcraft/psh/internal/config"
	"github.com/shellcraft/psh/internal/history"
	"github.com/shellcraft/psh/internal/jobctl"
	"github.com/shellcraft/psh/internal/lineedit"
	"github.com/shellcraft/psh/internal/shenv"
	"github.com/shellcraft/psh/internal/sigdisc"
	"github.com/shellcraft/psh/internal/terminal"
)

// ConfigFileName and HistoryFileName are resolved relative to the
// shell's working directory at startup, per spec §6.
const (
	ConfigFileName  = config.FileName
	HistoryFileName = ".psh_history"
)

// State is every piece of mutable shell state, owned by one struct
// instead of the reference shell's file-scope globals (first_job,
// first_env, cur_history, ...).
type State struct {
	Terminal *terminal.Controller
	Sig      *sigdisc.Discipline
	Env      *shenv.Store
	History  *history.Store
	Engine   *jobctl.Engine
	Builtins *builtin.Dispatcher
	Editor   *lineedit.Editor
	Log      *zap.Logger

	historyPath string
	out         io.Writer
	errOut      io.Writer

	pendingLine string

	// Debug enables verbose error-chain dumps (internal/diag) on
	// launch and plan-build failures, instead of the usual one-line
	// message.
	Debug bool
}

// New constructs a fully wired State: loads .pshrc and .psh_history
// from the current directory, installs signal discipline, and claims
// the controlling terminal.
func New(log *zap.Logger, debug bool) (*State, error) {
	term := terminal.New(int(os.Stdin.Fd()), log.Named("terminal"))
	if err := term.Initialize(); err != nil {
		return nil, err
	}
	// Raw mode is the shell's steady state between commands; it is only
	// turned off around a foreground job's wait (ForegroundJob) and
	// restored once that job returns the terminal.
	if err := term.EnableRaw(); err != nil {
		return nil, err
	}

	sig := sigdisc.Install()

	env := shenv.New()
	vars, order, err := config.Load(ConfigFileName)
	if err != nil {
		log.Warn("failed to read config file", zap.String("path", ConfigFileName), zap.Error(err))
	}
	env.Load(vars, order)

	hist, err := history.Load(HistoryFileName)
	if err != nil {
		log.Warn("failed to read history file", zap.String("path", HistoryFileName), zap.Error(err))
		hist = history.New()
	}

	engine := jobctl.NewEngine(term, log.Named("jobctl"))
	builtins := builtin.New(engine, env, ConfigFileName, os.Stdout, os.Stderr)
	editor := lineedit.New(hist.NewCursor(), os.Stdin, os.Stdout)

	return &State{
		Terminal:    term,
		Sig:         sig,
		Env:         env,
		History:     hist,
		Engine:      engine,
		Builtins:    builtins,
		Editor:      editor,
		Log:         log,
		historyPath: HistoryFileName,
		out:         os.Stdout,
		errOut:      os.Stderr,
		Debug:       debug,
	}, nil
}

// Shutdown restores cooked terminal mode, persists history, and stops
// signal discipline. It runs once the main loop returns, whether by
// end-of-input on stdin or by the `exit` builtin, mirroring main()'s
// post-loop cleanup.
func (s *State) Shutdown() {
	if err := s.Terminal.DisableRaw(); err != nil {
		s.Log.Warn("failed to restore cooked terminal mode", zap.Error(err))
	}
	if err := s.History.Save(s.historyPath); err != nil {
		s.Log.Warn("failed to save history", zap.String("path", s.historyPath), zap.Error(err))
	}
	s.Sig.Stop()
}
