package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".pshrc")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadParsesAssignments(t *testing.T) {
	path := writeConfig(t, "# a comment\nFOO=bar\nBAZ=\"quoted value\"\nnotanassignment\nPATH=/usr/bin:/bin\n")

	vars, order, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := map[string]string{"FOO": "bar", "BAZ": "quoted value", "PATH": "/usr/bin:/bin"}
	for k, v := range want {
		if got := vars[k]; got != v {
			t.Errorf("vars[%q] = %q, want %q", k, got, v)
		}
	}
	if len(vars) != len(want) {
		t.Errorf("got %d vars, want %d: %#v", len(vars), len(want), vars)
	}

	wantOrder := []string{"FOO", "BAZ", "PATH"}
	if len(order) != len(wantOrder) {
		t.Fatalf("order = %#v, want %#v", order, wantOrder)
	}
	for i, name := range wantOrder {
		if order[i] != name {
			t.Errorf("order[%d] = %q, want %q", i, order[i], name)
		}
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	vars, order, err := Load(filepath.Join(t.TempDir(), ".pshrc"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(vars) != 0 || len(order) != 0 {
		t.Fatalf("expected empty result for missing file, got vars=%#v order=%#v", vars, order)
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	path := writeConfig(t, "  SPACED  =   value with spaces  \n")
	vars, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := vars["SPACED"]; got != "value with spaces" {
		t.Errorf("SPACED = %q, want %q", got, "value with spaces")
	}
}

func TestLoadLaterAssignmentWins(t *testing.T) {
	path := writeConfig(t, "FOO=first\nFOO=second\n")
	vars, order, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if vars["FOO"] != "second" {
		t.Errorf("FOO = %q, want %q", vars["FOO"], "second")
	}
	if len(order) != 1 || order[0] != "FOO" {
		t.Errorf("order = %#v, want a single FOO entry", order)
	}
}
