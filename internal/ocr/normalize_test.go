package ocr

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf folded", "a\r\nb\rc", "a\nb\nc"},
		{"blank runs collapsed", "a\n\n\n\n\nb", "a\n\nb"},
		{"box noise removed", "a\n======\nb", "a\n\nb"},
		{"trailing spaces trimmed", "a  \t\nb", "a\nb"},
		{"leading whitespace preserved", "   x3) Salade 180,00", "   x3) Salade 180,00"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLines_KeepsBlankLines(t *testing.T) {
	lines := SplitLines("a\n\nb")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[1] != "" {
		t.Errorf("lines[1] = %q, want empty", lines[1])
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"x1) Entrées 850,00", 0},
		{"   x3) Salade 180,00", 3},
		{"\t\ttabulé", 2},
		{"", 0},
		{"    ", 4},
	}
	for _, tt := range tests {
		if got := Indent(tt.in); got != tt.want {
			t.Errorf("Indent(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
