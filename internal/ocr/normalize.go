package ocr

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[=\-]{4,}\s*$`)

// Normalize folds line endings and collapses noisy blank runs while leaving
// every line's leading whitespace untouched. Indentation encodes the
// category/production hierarchy downstream, so this must never trim or
// collapse spaces at the start of a line.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reBoxNoise.ReplaceAllString(s, "")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	// trim trailing spaces only; leading whitespace is load-bearing
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}

// SplitLines splits normalized text into lines, keeping blank lines so
// line numbers stay aligned with the source document.
func SplitLines(s string) []string {
	return strings.Split(Normalize(s), "\n")
}

// Indent counts leading space and tab characters of an unstripped line.
func Indent(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			n++
			continue
		}
		break
	}
	return n
}
