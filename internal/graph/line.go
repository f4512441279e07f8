package graph

import (
	"regexp"
	"strings"

	"irview/internal/ir"
)

// Line-shape patterns for the dump grammar. The grammar is semi-formal
// and evolving, so these are deliberately permissive: a line that fails
// every shape is ignored rather than rejected. Shapes are not mutually
// exclusive by construction; the builder tries them in a fixed priority
// order and the first match wins.
var (
	attrPattern    = regexp.MustCompile(`^\[(\w+)(?:\((.*)\))?\]$`)
	letPattern     = regexp.MustCompile(`^let\s+(%\w+)\s*:\s*(.+?)\s*=\s*(\w+)\s*(?:\((.*)\))?\s*;?$`)
	blockPattern   = regexp.MustCompile(`^block\s+(%\w+)\s*[:(]`)
	funcPattern    = regexp.MustCompile(`^func\s+(%\w+)\s*:\s*(.+?)\s*;?$`)
	globalPattern  = regexp.MustCompile(`^(%\w+)\s*:\s*(.+?)\s*=\s*global_param\b`)
	witnessPattern = regexp.MustCompile(`^witness_table\s+(%\w+)\s*:\s*(.+?)\s*;?$`)
	structPattern  = regexp.MustCompile(`^struct\s+(%\w+)\s*:\s*(.+?)\s*;?$`)
	paramPattern   = regexp.MustCompile(`^param\s+(%\w+)\s*:\s*(.+?)\s*;?$`)
	voidOpPattern  = regexp.MustCompile(`^(\w+)\s*(?:\((.*)\))?\s*;?$`)
)

// parseAttribute recognizes a line that is exactly a bracketed [name] or
// [name(args)] annotation.
func parseAttribute(line string) (ir.Attribute, bool) {
	m := attrPattern.FindStringSubmatch(line)
	if m == nil {
		return ir.Attribute{}, false
	}
	return ir.Attribute{
		Name:     m[1],
		ArgsRaw:  m[2],
		Raw:      line,
		Operands: ParseOperands(m[2]),
	}, true
}

// boundInstr is a parsed "let ID : TYPE = OPCODE(args)" line.
type boundInstr struct {
	id         string
	resultType string
	opcode     string
	argsRaw    string
}

func parseBoundInstr(line string) (boundInstr, bool) {
	m := letPattern.FindStringSubmatch(line)
	if m == nil {
		return boundInstr{}, false
	}
	return boundInstr{id: m[1], resultType: m[2], opcode: m[3], argsRaw: m[4]}, true
}

// parseBlock recognizes "block ID:" and "block ID(" headers (block
// headers may carry a parameter list).
func parseBlock(line string) (string, bool) {
	m := blockPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// typedDecl is a parsed "KEYWORD ID : TYPE" line (func, witness_table,
// struct, param) or a "ID : TYPE = global_param" line.
type typedDecl struct {
	id         string
	resultType string
}

func parseFunc(line string) (typedDecl, bool) {
	m := funcPattern.FindStringSubmatch(line)
	if m == nil {
		return typedDecl{}, false
	}
	return typedDecl{id: m[1], resultType: m[2]}, true
}

func parseGlobalParam(line string) (typedDecl, bool) {
	m := globalPattern.FindStringSubmatch(line)
	if m == nil {
		return typedDecl{}, false
	}
	return typedDecl{id: m[1], resultType: m[2]}, true
}

func parseWitnessTable(line string) (typedDecl, bool) {
	m := witnessPattern.FindStringSubmatch(line)
	if m == nil {
		return typedDecl{}, false
	}
	return typedDecl{id: m[1], resultType: m[2]}, true
}

func parseStruct(line string) (typedDecl, bool) {
	m := structPattern.FindStringSubmatch(line)
	if m == nil {
		return typedDecl{}, false
	}
	return typedDecl{id: m[1], resultType: m[2]}, true
}

func parseParam(line string) (typedDecl, bool) {
	m := paramPattern.FindStringSubmatch(line)
	if m == nil {
		return typedDecl{}, false
	}
	return typedDecl{id: m[1], resultType: m[2]}, true
}

// voidOp is a parsed unbound operation: "OPCODE" or "OPCODE(args)" with
// no result binding.
type voidOp struct {
	opcode  string
	argsRaw string
}

// parseVoidOp recognizes a remaining non-empty line shaped as a bare
// operation. Lines containing an equals sign are not void ops (they are
// malformed bindings, ignored), bracketed attribute forms were consumed
// earlier, and lines ending in a colon are block-header-like and also
// excluded.
func parseVoidOp(line string) (voidOp, bool) {
	if strings.Contains(line, "=") || strings.HasSuffix(line, ":") {
		return voidOp{}, false
	}
	m := voidOpPattern.FindStringSubmatch(line)
	if m == nil {
		return voidOp{}, false
	}
	return voidOp{opcode: m[1], argsRaw: m[2]}, true
}
