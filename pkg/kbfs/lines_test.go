package kbfs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitLines(t *testing.T) {
	tests := map[string][]string{
		"":               {},
		"a":              {"a"},
		"a\n":            {"a"},
		"a\n\n":          {"a", ""},
		"\n":             {""},
		"a\r\nb":         {"a", "b"},
		"a\rb\r":         {"a", "b"},
		"a\r\r\nb":       {"a", "", "b"},
		"x\ny\r\nz\rw\n": {"x", "y", "z", "w"},
	}
	for in, want := range tests {
		if diff := cmp.Diff(want, splitLines(in)); diff != "" {
			t.Errorf("splitLines(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestCharsetHint(t *testing.T) {
	if got := charsetHint([]byte("caf\xe9 au lait, cr\xe8me br\xfbl\xe9e, d\xe9j\xe0 vu")); got == "" {
		t.Fatalf("expected a hint")
	}
}
