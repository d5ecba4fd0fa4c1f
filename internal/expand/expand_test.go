package expand

import "testing"

type fakeEnv map[string]string

func (f fakeEnv) Get(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

func TestExpandVariable(t *testing.T) {
	ctx := Context{
		Env:            fakeEnv{"FOO": "bar"},
		LastExitStatus: 2,
		ShellPgid:      1234,
		LastBgPgid:     5678,
	}

	tests := []struct {
		name string
		tok  string
		want string
	}{
		{"known variable", "$FOO", "bar"},
		{"unknown variable is empty", "$MISSING", ""},
		{"exit status", "$?", "2"},
		{"shell pgid", "$$", "1234"},
		{"background pgid", "$!", "5678"},
		{"embedded in text", "prefix-$FOO-suffix", "prefix-bar-suffix"},
		{"reserved brace form untouched", "${FOO}", "${FOO}"},
		{"stops at special char", "$FOO/baz", "bar/baz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandVariable(tt.tok, ctx)
			if got != tt.want {
				t.Errorf("expandVariable(%q) = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestExpandTilde(t *testing.T) {
	t.Setenv("HOME", "/home/psh")

	got := expandTilde("~/work")
	if got != "/home/psh/work" {
		t.Errorf("expandTilde(~/work) = %q, want /home/psh/work", got)
	}

	if got := expandTilde("notilde"); got != "notilde" {
		t.Errorf("expandTilde left unchanged string unexpectedly: %q", got)
	}
}

func TestExpandBraceList(t *testing.T) {
	got := expandBrace("file{a,b,c}.txt")
	want := []string{"filea.txt", "fileb.txt", "filec.txt"}
	assertStrings(t, got, want)
}

func TestExpandBraceRange(t *testing.T) {
	got := expandBrace("item{1..3}")
	want := []string{"item1", "item2", "item3"}
	assertStrings(t, got, want)

	got = expandBrace("item{3..1}")
	want = []string{"item3", "item2", "item1"}
	assertStrings(t, got, want)
}

func TestExpandBraceLiteralWhenMalformed(t *testing.T) {
	got := expandBrace("weird{a,b*c}")
	assertStrings(t, got, []string{"weird{a,b*c}"})
}

func TestExpandFull(t *testing.T) {
	ctx := Context{Env: fakeEnv{"NAME": "x"}}
	got := Expand([]string{"echo", "$NAME{1,2}"}, ctx)
	want := []string{"echo", "x1", "x2"}
	assertStrings(t, got, want)
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %#v, want %#v", got, want)
		}
	}
}
