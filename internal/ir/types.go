package ir

// NodeKind classifies a parsed IR entity. It is a closed tag set:
// parsers must emit one of the constants below, never free-form strings.
type NodeKind string

const (
	KindInstruction NodeKind = "instruction"
	KindBlock       NodeKind = "block"
	KindFunction    NodeKind = "function"
	KindVariable    NodeKind = "variable"
	KindStruct      NodeKind = "struct"
	KindParameter   NodeKind = "parameter"
	KindLiteral     NodeKind = "literal"
	KindMetadata    NodeKind = "metadata"
	KindUnknown     NodeKind = "unknown"
)

// ValidKinds lists every allowed NodeKind value.
var ValidKinds = []NodeKind{
	KindInstruction, KindBlock, KindFunction, KindVariable,
	KindStruct, KindParameter, KindLiteral, KindMetadata, KindUnknown,
}

// Valid reports whether k is one of the closed set of node kinds.
func (k NodeKind) Valid() bool {
	for _, v := range ValidKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Operand is a single argument of an instruction or attribute.
// ReferencedID is set when the argument text carries a sigil-prefixed
// identifier (e.g. "%7"); literal arguments leave it empty. When set,
// ReferencedID is always a substring of Raw.
type Operand struct {
	Raw          string `json:"raw"`
	ReferencedID string `json:"referenced_id,omitempty"`
}

// Attribute is a bracketed metadata annotation such as [layout(%8)] or
// [nameHint("x")]. Attributes appear on lines immediately preceding the
// entity they decorate and accumulate until a non-attribute entity line
// flushes them.
type Attribute struct {
	Name     string    `json:"name"`
	ArgsRaw  string    `json:"args_raw,omitempty"`
	Raw      string    `json:"raw"`
	Operands []Operand `json:"operands,omitempty"`
}

// Node is one parsed IR entity: an instruction result, a block label, a
// function, a global variable, a struct, a witness table, or a block
// parameter.
type Node struct {
	// ID is either the sigil-prefixed symbol from the source line or a
	// synthesized "line_<N>" id for operations with no named result.
	ID string `json:"id"`

	Kind NodeKind `json:"kind"`

	// Opcode is the operation name (load, store, block, func, ...).
	Opcode string `json:"opcode,omitempty"`

	// Void marks an unbound operation (a bare "store(...)" statement)
	// whose id was synthesized from its line index.
	Void bool `json:"void,omitempty"`

	// ResultType is the raw textual type annotation, verbatim.
	ResultType string `json:"result_type,omitempty"`

	Operands   []Operand   `json:"operands,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`

	// SourceLine is the 0-based line number within the pass text.
	SourceLine int `json:"source_line"`

	// EnclosingBlock is the id of the block this entity is lexically
	// nested inside; empty for top-level definitions.
	EnclosingBlock string `json:"enclosing_block,omitempty"`

	// OriginalLine is the verbatim source line, retained for display.
	OriginalLine string `json:"original_line"`
}

// Edge is a directed dependency (From, To) meaning the value From is
// consumed in the definition of To. Duplicate pairs are tolerated: the
// same reference reached through the operand path and the deep type scan
// is recorded twice.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Pass is one named snapshot of IR text within a multi-stage dump.
type Pass struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
