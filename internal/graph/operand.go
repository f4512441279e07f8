package graph

import (
	"regexp"
	"strings"

	"irview/internal/ir"
)

// refPattern matches a sigil-prefixed identifier such as %7 or %entry_0.
var refPattern = regexp.MustCompile(`%\w+`)

// SplitArgs splits a raw argument string on commas at paren-nesting depth
// zero. A naive comma split would break apart compound arguments such as
// makeVector(0, 0); depth is tracked character by character instead.
// Empty and all-whitespace input yields no segments.
func SplitArgs(argsRaw string) []string {
	if strings.TrimSpace(argsRaw) == "" {
		return nil
	}

	var segs []string
	depth := 0
	start := 0
	for i := 0; i < len(argsRaw); i++ {
		switch argsRaw[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				segs = append(segs, strings.TrimSpace(argsRaw[start:i]))
				start = i + 1
			}
		}
	}
	segs = append(segs, strings.TrimSpace(argsRaw[start:]))
	return segs
}

// ParseOperands converts an argument list into operands. Each segment
// keeps its full trimmed text as Raw; the first sigil-prefixed
// identifier inside it, if any, becomes ReferencedID. A segment is
// assumed to carry at most one primary reference, consistent with the
// dump grammar. Segments with no recognizable reference still yield a
// reference-less operand; this never fails.
func ParseOperands(argsRaw string) []ir.Operand {
	segs := SplitArgs(argsRaw)
	if len(segs) == 0 {
		return nil
	}
	ops := make([]ir.Operand, 0, len(segs))
	for _, seg := range segs {
		ops = append(ops, ir.Operand{Raw: seg, ReferencedID: FirstRef(seg)})
	}
	return ops
}

// ScanRefs extracts every sigil-prefixed identifier occurring anywhere
// in the fragment, deduplicated within the fragment, in first-occurrence
// order. Used to catch references nested inside compound operands and
// parameterized type annotations.
func ScanRefs(fragment string) []string {
	matches := refPattern.FindAllString(fragment, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var refs []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			refs = append(refs, m)
		}
	}
	return refs
}

// FirstRef returns the first sigil-prefixed identifier in the fragment,
// or "" if there is none.
func FirstRef(fragment string) string {
	return refPattern.FindString(fragment)
}
