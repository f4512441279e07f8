package harness

import (
	"fmt"

	"irview/internal/graph"
	"irview/internal/ir"
	"irview/internal/segment"
)

// Result holds the outcome of running a scenario.
type Result struct {
	// Pass is true when every check succeeded.
	Pass bool

	// Errors lists each failed check, one message per failure.
	Errors []string
}

// Run executes a scenario: segments the dump, builds the graph for the
// selected pass, and evaluates every assertion. All failures are
// collected rather than stopping at the first.
func Run(s *Scenario) *Result {
	r := &Result{Pass: true}

	passes := segment.Split(s.Dump)

	if len(s.ExpectPasses) > 0 {
		checkPassNames(r, passes, s.ExpectPasses)
	}

	if s.Pass >= len(passes) {
		r.fail("pass index %d out of range (dump has %d pass(es))", s.Pass, len(passes))
		return r
	}

	g := graph.Build(passes[s.Pass].Content)
	for i, a := range s.Assertions {
		evalAssertion(r, i, &a, g)
	}

	return r
}

func checkPassNames(r *Result, passes []ir.Pass, expected []string) {
	if len(passes) != len(expected) {
		r.fail("expected %d pass(es), got %d", len(expected), len(passes))
		return
	}
	for i, name := range expected {
		if passes[i].Name != name {
			r.fail("pass %d: expected name %q, got %q", i, name, passes[i].Name)
		}
	}
}

func evalAssertion(r *Result, index int, a *Assertion, g *ir.Graph) {
	switch a.Type {
	case AssertNodeExists:
		node := g.Node(a.ID)
		if node == nil {
			r.fail("assertions[%d]: node %s not found", index, a.ID)
			return
		}
		checkNodeFields(r, index, a, node)
	case AssertNodeAbsent:
		if g.Node(a.ID) != nil {
			r.fail("assertions[%d]: node %s unexpectedly present", index, a.ID)
		}
	case AssertNodeCount:
		if len(g.Nodes) != a.Count {
			r.fail("assertions[%d]: expected %d node(s), got %d", index, a.Count, len(g.Nodes))
		}
	case AssertEdgeExists:
		if countEdges(g, a.From, a.To) == 0 {
			r.fail("assertions[%d]: edge %s -> %s not found", index, a.From, a.To)
		}
	case AssertEdgeCount:
		if n := countEdges(g, a.From, a.To); n != a.Count {
			r.fail("assertions[%d]: edge %s -> %s: expected %d occurrence(s), got %d",
				index, a.From, a.To, a.Count, n)
		}
	case AssertFunctionListed:
		found := false
		for _, fn := range g.Functions {
			if fn == a.ID {
				found = true
				break
			}
		}
		if !found {
			r.fail("assertions[%d]: function %s not listed", index, a.ID)
		}
	}
}

func checkNodeFields(r *Result, index int, a *Assertion, node *ir.Node) {
	if a.Kind != "" && string(node.Kind) != a.Kind {
		r.fail("assertions[%d]: node %s: expected kind %q, got %q", index, a.ID, a.Kind, node.Kind)
	}
	if a.Opcode != "" && node.Opcode != a.Opcode {
		r.fail("assertions[%d]: node %s: expected opcode %q, got %q", index, a.ID, a.Opcode, node.Opcode)
	}
	if a.ResultType != "" && node.ResultType != a.ResultType {
		r.fail("assertions[%d]: node %s: expected result type %q, got %q", index, a.ID, a.ResultType, node.ResultType)
	}
	if a.Block != "" && node.EnclosingBlock != a.Block {
		r.fail("assertions[%d]: node %s: expected block %q, got %q", index, a.ID, a.Block, node.EnclosingBlock)
	}
}

func countEdges(g *ir.Graph, from, to string) int {
	n := 0
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			n++
		}
	}
	return n
}

func (r *Result) fail(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
