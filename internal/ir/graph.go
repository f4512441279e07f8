package ir

// Graph is the parse result for a single pass: the node set in source
// order, the derived edge list, the entry-point (function) ids, and the
// raw line array needed for context display.
type Graph struct {
	Nodes     []*Node  `json:"nodes"`
	Edges     []Edge   `json:"edges"`
	Functions []string `json:"functions"`
	RawLines  []string `json:"raw_lines"`

	index map[string]*Node
}

// NewGraph creates an empty graph over the given raw lines.
func NewGraph(rawLines []string) *Graph {
	return &Graph{
		Nodes:     []*Node{},
		Edges:     []Edge{},
		Functions: []string{},
		RawLines:  rawLines,
		index:     make(map[string]*Node),
	}
}

// AddNode appends a node, preserving source order. If a node with the
// same id already exists the new definition replaces it in the index but
// both stay in the ordered list, mirroring how a loosely-formatted dump
// can redefine a symbol.
func (g *Graph) AddNode(n *Node) {
	g.Nodes = append(g.Nodes, n)
	g.index[n.ID] = n
}

// AddEdge records a dependency edge. Duplicates are kept.
func (g *Graph) AddEdge(from, to string) {
	g.Edges = append(g.Edges, Edge{From: from, To: to})
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.index[id]
}

// Context returns a window of raw lines around the given 0-based line
// index: up to radius lines on each side. Out-of-range indices clamp to
// the available lines; a nil or empty line array yields nil.
func (g *Graph) Context(line, radius int) []string {
	if len(g.RawLines) == 0 || radius < 0 {
		return nil
	}
	start := line - radius
	if start < 0 {
		start = 0
	}
	end := line + radius + 1
	if end > len(g.RawLines) {
		end = len(g.RawLines)
	}
	if start >= end {
		return nil
	}
	out := make([]string, end-start)
	copy(out, g.RawLines[start:end])
	return out
}
