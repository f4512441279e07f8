// Package segment splits a raw multi-pass IR dump into named passes.
//
// A pass boundary is a line that is exactly the marker token ("###")
// immediately followed by a line starting with the same marker; the
// remainder of that second line names the pass. Everything between
// boundaries becomes the content of the pass opened by the preceding
// boundary. Segmentation never fails: unrecognized structure simply
// lands in the surrounding pass content.
package segment

import (
	"strings"

	"irview/internal/ir"
)

const (
	// Marker is the pass-boundary token.
	Marker = "###"

	// DefaultPassName names the single pass of a dump without boundaries,
	// and any content preceding the first boundary.
	DefaultPassName = "Source"

	// UnnamedPassName is the fallback when a name line strips to nothing.
	UnnamedPassName = "Unnamed Pass"
)

// Split scans the raw dump line by line and returns its ordered pass
// list. For non-empty input the result is never empty: a dump with no
// boundaries comes back as a single "Source" pass holding the input
// verbatim. Empty input yields a single empty-content "Source" pass.
func Split(raw string) []ir.Pass {
	lines := strings.Split(normalizeNewlines(raw), "\n")

	var passes []ir.Pass
	var buf []string
	name := ""
	opened := false

	// flush emits the accumulated buffer as a completed pass. A blank
	// buffer is dropped: before the first boundary that suppresses a
	// spurious empty leading pass, between boundaries it keeps
	// consecutive delimiters from emitting an empty pass, and at end of
	// input it drops a trailing all-blank tail. The one exception is end
	// of input with nothing emitted yet, which guarantees a non-empty
	// result.
	flush := func(atEOF bool) {
		content := strings.Join(buf, "\n")
		buf = nil
		blank := strings.TrimSpace(content) == ""
		if blank && !(atEOF && len(passes) == 0) {
			return
		}
		passName := name
		if !opened {
			passName = DefaultPassName
		}
		passes = append(passes, ir.Pass{Name: passName, Content: content})
	}

	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == Marker {
			if i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), Marker) {
				flush(false)
				name = passName(lines[i+1])
				opened = true
				i += 2
				continue
			}
			// Solitary marker with no name line: no-op separator.
			i++
			continue
		}
		buf = append(buf, lines[i])
		i++
	}
	flush(true)

	return passes
}

// HasBoundary reports whether the raw text contains at least one pass
// boundary: a marker line immediately followed by a line starting with
// the marker. Editors use this to decide between re-segmenting a dump
// and mutating the current pass content in place.
func HasBoundary(raw string) bool {
	lines := strings.Split(normalizeNewlines(raw), "\n")
	for i := 0; i+1 < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Marker &&
			strings.HasPrefix(strings.TrimSpace(lines[i+1]), Marker) {
			return true
		}
	}
	return false
}

// passName derives a pass name from a name line: the marker prefix is
// stripped, a trailing colon is stripped, and the remainder trimmed.
func passName(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, Marker)
	s = strings.TrimSuffix(strings.TrimSpace(s), ":")
	s = strings.TrimSpace(s)
	if s == "" {
		return UnnamedPassName
	}
	return s
}

// normalizeNewlines folds CRLF and bare CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
