// Package explain calls an external text-generation service to produce
// human-readable descriptions of parsed IR entities. It is a strictly
// optional collaborator: failures surface as a placeholder message and
// never affect parser state.
package explain

import (
	"context"
	"fmt"
	"strings"

	"irview/internal/ir"
)

// Placeholder is shown when no explanation service is configured or a
// call to it fails.
const Placeholder = "Explanation unavailable. Configure OPENAI_API_KEY to enable AI explanations."

// Explainer produces free-form descriptive text for a single node (with
// its surrounding source lines) or flow-analysis text for a whole pass.
type Explainer interface {
	ExplainNode(ctx context.Context, node *ir.Node, contextLines []string) (string, error)
	ExplainPass(ctx context.Context, passName, passText string) (string, error)
}

// Disabled is the no-credential fallback: every call succeeds with the
// placeholder message.
type Disabled struct{}

func (Disabled) ExplainNode(context.Context, *ir.Node, []string) (string, error) {
	return Placeholder, nil
}

func (Disabled) ExplainPass(context.Context, string, string) (string, error) {
	return Placeholder, nil
}

// nodePrompt renders the instruction and its context window into the
// user prompt for the model.
func nodePrompt(node *ir.Node, contextLines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Explain this shader compiler IR instruction in one short paragraph:\n\n")
	fmt.Fprintf(&b, "  %s\n\n", node.OriginalLine)
	fmt.Fprintf(&b, "Entity kind: %s", node.Kind)
	if node.Opcode != "" {
		fmt.Fprintf(&b, ", opcode: %s", node.Opcode)
	}
	if node.ResultType != "" {
		fmt.Fprintf(&b, ", result type: %s", node.ResultType)
	}
	b.WriteString("\n")
	if len(contextLines) > 0 {
		b.WriteString("\nSurrounding lines for context:\n")
		for _, line := range contextLines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	b.WriteString("\nDescribe what the instruction does and how it relates to its operands.")
	return b.String()
}

// passPrompt renders a whole pass for flow analysis.
func passPrompt(passName, passText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the data flow of this shader compiler IR pass (%q).\n", passName)
	b.WriteString("Summarize what the code computes, its entry points, and notable dependencies:\n\n")
	b.WriteString(passText)
	return b.String()
}
