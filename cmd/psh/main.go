package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shellcraft/psh/internal/shell"
)

func main() {
	debug := flag.Bool("debug", false, "enable structured logging to PSH_LOG (or $HOME/.psh.log)")
	flag.Parse()

	log := buildLogger(*debug)
	defer log.Sync()

	st, err := shell.New(log.Named("shell"), *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "psh: %v\n", err)
		os.Exit(1)
	}

	// os.Exit skips deferred calls, so Shutdown and the log flush run
	// explicitly before it.
	status := st.Run()
	st.Shutdown()
	log.Sync()
	os.Exit(status)
}

// buildLogger never logs to stdout/stderr: interactive raw-mode line
// editing owns the terminal's display, and interleaved log lines would
// corrupt it. The logger is silent unless explicitly requested, and
// writes to a file when it is.
func buildLogger(debug bool) *zap.Logger {
	_, envDebug := os.LookupEnv("PSH_DEBUG")
	if !debug && !envDebug {
		return zap.NewNop()
	}

	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.OutputPaths = []string{logFilePath()}
	return zap.Must(logConfig.Build())
}

func logFilePath() string {
	if p, ok := os.LookupEnv("PSH_LOG"); ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".psh.log"
	}
	return filepath.Join(home, ".psh.log")
}
