package token

import "testing"

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"single word", "ls", []string{"ls"}},
		{"multiple words", "ls -la /tmp", []string{"ls", "-la", "/tmp"}},
		{"collapses whitespace", "ls   -la", []string{"ls", "-la"}},
		{"quoted span keeps whitespace as one token", `echo "a b c"`, []string{"echo", `"a b c"`}},
		{"pipe and redirection glued to words", "ls|grep x>out", []string{"ls|grep", "x>out"}},
		{"trailing background operator", "sleep 5 &", []string{"sleep", "5", "&"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Tokenize(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCategorizeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		valid  bool
		cont   bool
	}{
		{"simple command", []string{"ls"}, true, false},
		{"command with args", []string{"ls", "-la", "/tmp"}, true, false},
		{"pipeline", []string{"ls", "|", "grep", "x"}, true, false},
		{"redirection", []string{"ls", ">", "out.txt"}, true, false},
		{"inversion", []string{"!", "false"}, true, false},
		{"sequence operator", []string{"ls", ";", "pwd"}, true, false},
		{"background job", []string{"sleep", "5", "&"}, true, false},
		{"trailing pipe needs continuation", []string{"ls", "|"}, false, true},
		{"trailing operator needs continuation", []string{"ls", ";"}, false, true},
		{"trailing line continuation", []string{"ls", `foo\`}, false, true},
		{"unterminated quote needs continuation", []string{"echo", `"unterminated`}, false, true},
		{"leading pipe is syntax error", []string{"|", "ls"}, false, false},
		{"redirection with no target", []string{"ls", ">", ";"}, false, false},
		{"double pipe is syntax error", []string{"ls", "|", "|", "grep"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cats := Categorize(tt.tokens)
			result := Validate(cats)

			if result.IsValid() != tt.valid {
				t.Errorf("IsValid() = %v, want %v (cats=%v)", result.IsValid(), tt.valid, cats)
			}
			if result.NeedsContinuation() != tt.cont {
				t.Errorf("NeedsContinuation() = %v, want %v (cats=%v)", result.NeedsContinuation(), tt.cont, cats)
			}
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	tokens := []string{"ls", "-la", "|", "grep", "x", ">", "out.txt"}
	cats := Categorize(tokens)

	first := Validate(cats)
	second := Validate(cats)
	if first.IsValid() != second.IsValid() {
		t.Fatalf("validation of an already-valid category sequence is not idempotent")
	}
}
