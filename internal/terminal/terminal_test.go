package terminal

import (
	"os"
	"testing"

	"go.uber.org/zap"
)

// Raw-mode enable/disable and process-group handoff require a real
// controlling terminal; PSH_NON_INTERACTIVE forces every such operation
// to a no-op, which is what these tests exercise.

func TestNewDetectsForcedNonInteractive(t *testing.T) {
	os.Setenv("PSH_NON_INTERACTIVE", "1")
	defer os.Unsetenv("PSH_NON_INTERACTIVE")

	c := New(int(os.Stdin.Fd()), zap.NewNop())
	if c.Interactive() {
		t.Fatalf("expected PSH_NON_INTERACTIVE to force non-interactive mode")
	}
}

func TestNonInteractiveOperationsAreNoops(t *testing.T) {
	os.Setenv("PSH_NON_INTERACTIVE", "1")
	defer os.Unsetenv("PSH_NON_INTERACTIVE")

	c := New(int(os.Stdin.Fd()), zap.NewNop())
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if c.IsRaw() {
		t.Fatalf("expected IsRaw to start false")
	}
	if err := c.EnableRaw(); err != nil {
		t.Fatalf("EnableRaw: %v", err)
	}
	if c.IsRaw() {
		t.Fatalf("EnableRaw must stay a no-op in non-interactive mode")
	}
	if err := c.DisableRaw(); err != nil {
		t.Fatalf("DisableRaw: %v", err)
	}
	if err := c.HandToJob(1234); err != nil {
		t.Fatalf("HandToJob: %v", err)
	}
	state, err := c.Reclaim()
	if err != nil || state != nil {
		t.Fatalf("Reclaim: expected (nil, nil), got (%v, %v)", state, err)
	}
}
