package shell

import (
	"bytes"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/shellcraft/psh/internal/terminal"
)

func TestDiagfPlainWhenNotRaw(t *testing.T) {
	os.Setenv("PSH_NON_INTERACTIVE", "1")
	defer os.Unsetenv("PSH_NON_INTERACTIVE")

	var buf bytes.Buffer
	s := &State{
		Terminal: terminal.New(int(os.Stdin.Fd()), zap.NewNop()),
		errOut:   &buf,
	}

	s.diagf("psh: %s", "syntax error")

	if got, want := buf.String(), "psh: syntax error\n"; got != want {
		t.Fatalf("diagf() = %q, want %q", got, want)
	}
}
