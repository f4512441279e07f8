// Package graph builds a typed dependency graph from one pass of a
// shader compiler IR text dump.
//
// The builder makes a single left-to-right scan over the pass lines and
// classifies each line against a fixed priority order of shapes. Input
// it cannot classify contributes no node; there is no malformed-input
// failure mode. Every call recomputes the full graph from the full
// text — no caching, no incremental diffing, no internal suspension
// points.
package graph

import (
	"fmt"
	"strings"

	"irview/internal/ir"
	"irview/internal/segment"
)

// scanState is the mutable accumulator threaded through the line scan:
// attributes seen but not yet attached, and the id of the block that is
// lexically open. A block header opens a block; a function header
// clears it, since a new function starts a fresh lexical scope.
type scanState struct {
	pending      []ir.Attribute
	currentBlock string
}

// Build parses one pass's raw text into a dependency graph. It never
// fails: unclassifiable lines are ignored and the result degrades to a
// smaller graph.
func Build(passText string) *ir.Graph {
	lines := strings.Split(normalizeNewlines(passText), "\n")
	g := ir.NewGraph(lines)
	st := &scanState{}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		// Blank and comment lines are skipped; so is pass-delimiter
		// residue, in case a segmentation boundary leaked through.
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, segment.Marker) {
			continue
		}

		if attr, ok := parseAttribute(line); ok {
			st.pending = append(st.pending, attr)
			continue
		}

		if instr, ok := parseBoundInstr(line); ok {
			n := &ir.Node{
				ID:             instr.id,
				Kind:           ir.KindInstruction,
				Opcode:         instr.opcode,
				ResultType:     instr.resultType,
				Operands:       ParseOperands(instr.argsRaw),
				SourceLine:     i,
				EnclosingBlock: st.currentBlock,
				OriginalLine:   raw,
			}
			addOperandEdges(g, n)
			addFragmentEdges(g, instr.resultType, n.ID)
			flushAttributes(g, st, n)
			g.AddNode(n)
			continue
		}

		if id, ok := parseBlock(line); ok {
			n := &ir.Node{
				ID:           id,
				Kind:         ir.KindBlock,
				Opcode:       "block",
				SourceLine:   i,
				OriginalLine: raw,
			}
			flushAttributes(g, st, n)
			g.AddNode(n)
			st.currentBlock = id
			continue
		}

		if fn, ok := parseFunc(line); ok {
			n := &ir.Node{
				ID:           fn.id,
				Kind:         ir.KindFunction,
				Opcode:       "func",
				ResultType:   fn.resultType,
				SourceLine:   i,
				OriginalLine: raw,
			}
			flushAttributes(g, st, n)
			g.AddNode(n)
			g.Functions = append(g.Functions, fn.id)
			st.currentBlock = ""
			continue
		}

		if gp, ok := parseGlobalParam(line); ok {
			n := &ir.Node{
				ID:           gp.id,
				Kind:         ir.KindVariable,
				Opcode:       "global_param",
				ResultType:   gp.resultType,
				SourceLine:   i,
				OriginalLine: raw,
			}
			addTypeRefOperands(g, n)
			flushAttributes(g, st, n)
			g.AddNode(n)
			continue
		}

		if wt, ok := parseWitnessTable(line); ok {
			n := &ir.Node{
				ID:           wt.id,
				Kind:         ir.KindVariable,
				Opcode:       "witness_table",
				ResultType:   wt.resultType,
				SourceLine:   i,
				OriginalLine: raw,
			}
			addTypeRefOperands(g, n)
			flushAttributes(g, st, n)
			g.AddNode(n)
			continue
		}

		if sd, ok := parseStruct(line); ok {
			n := &ir.Node{
				ID:           sd.id,
				Kind:         ir.KindStruct,
				Opcode:       "struct",
				ResultType:   sd.resultType,
				SourceLine:   i,
				OriginalLine: raw,
			}
			flushAttributes(g, st, n)
			g.AddNode(n)
			continue
		}

		if p, ok := parseParam(line); ok {
			n := &ir.Node{
				ID:             p.id,
				Kind:           ir.KindParameter,
				Opcode:         "param",
				ResultType:     p.resultType,
				SourceLine:     i,
				EnclosingBlock: st.currentBlock,
				OriginalLine:   raw,
			}
			flushAttributes(g, st, n)
			g.AddNode(n)
			continue
		}

		if op, ok := parseVoidOp(line); ok {
			n := &ir.Node{
				ID:             syntheticID(i),
				Kind:           ir.KindInstruction,
				Opcode:         op.opcode,
				Void:           true,
				Operands:       ParseOperands(op.argsRaw),
				SourceLine:     i,
				EnclosingBlock: st.currentBlock,
				OriginalLine:   raw,
			}
			addOperandEdges(g, n)
			flushAttributes(g, st, n)
			g.AddNode(n)
			continue
		}

		// Anything else is intentionally ignored, not an error.
	}

	// Trailing attributes with no following entity are dropped silently.
	return g
}

// syntheticID names an operation with no bound result. Line indices are
// unique within a pass, so the mapping is injective and reproducible.
func syntheticID(line int) string {
	return fmt.Sprintf("line_%d", line)
}

// addOperandEdges records dependency edges for every operand of n: the
// primary per-operand reference, plus a deep scan of each operand's raw
// text to catch references nested inside compound argument expressions.
// The two paths can record the same pair twice; duplicates are kept.
func addOperandEdges(g *ir.Graph, n *ir.Node) {
	for _, op := range n.Operands {
		if op.ReferencedID != "" {
			g.AddEdge(op.ReferencedID, n.ID)
		}
		for _, ref := range ScanRefs(op.Raw) {
			g.AddEdge(ref, n.ID)
		}
	}
}

// addFragmentEdges deep-scans a text fragment (typically a type
// annotation) and records an edge for every reference found, catching
// generic or specialized types that depend on other entities.
func addFragmentEdges(g *ir.Graph, fragment, to string) {
	for _, ref := range ScanRefs(fragment) {
		g.AddEdge(ref, to)
	}
}

// addTypeRefOperands turns every reference inside n's type annotation
// into both a synthetic operand and an edge. Used for global parameters
// and witness tables, whose types can be parameterized by other ids
// (e.g. a buffer type carrying a layout id).
func addTypeRefOperands(g *ir.Graph, n *ir.Node) {
	for _, ref := range ScanRefs(n.ResultType) {
		n.Operands = append(n.Operands, ir.Operand{Raw: ref, ReferencedID: ref})
		g.AddEdge(ref, n.ID)
	}
}

// flushAttributes attaches the pending attribute buffer to n and records
// edges for the references carried by attribute operands, both the
// primary reference and the deep scan of each operand's raw text.
func flushAttributes(g *ir.Graph, st *scanState, n *ir.Node) {
	if len(st.pending) == 0 {
		return
	}
	n.Attributes = st.pending
	st.pending = nil
	for _, attr := range n.Attributes {
		for _, op := range attr.Operands {
			if op.ReferencedID != "" {
				g.AddEdge(op.ReferencedID, n.ID)
			}
			for _, ref := range ScanRefs(op.Raw) {
				g.AddEdge(ref, n.ID)
			}
		}
	}
}

// normalizeNewlines folds CRLF and bare CR line endings to LF. Pass text
// coming from the segmenter is already normalized; this keeps Build safe
// to call on raw text directly.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
