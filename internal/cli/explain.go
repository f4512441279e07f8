package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"irview/internal/explain"
	"irview/internal/graph"
	"irview/internal/segment"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	*RootOptions
	Pass   int    // pass index
	Node   string // node id to explain; empty explains the whole pass
	Radius int    // context window radius for node explanations
	Model  string // model override
}

// ExplainResult is the JSON payload for the explain command.
type ExplainResult struct {
	Pass        string `json:"pass"`
	NodeID      string `json:"node_id,omitempty"`
	Explanation string `json:"explanation"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain <dump-file>",
		Short: "Explain a pass or a single instruction with AI",
		Long: `Ask the configured AI model to explain one pass of an IR dump, or a
single node within it when --node is given.

Requires OPENAI_API_KEY in the environment; without it the command
prints a placeholder message. Use "-" to read the dump from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Pass, "pass", "p", 0, "pass index")
	cmd.Flags().StringVarP(&opts.Node, "node", "n", "", "node id to explain (e.g. %9)")
	cmd.Flags().IntVar(&opts.Radius, "radius", 3, "context lines around the node")
	cmd.Flags().StringVar(&opts.Model, "model", "", "model to use (defaults to "+explain.DefaultModel+")")

	return cmd
}

func runExplain(opts *ExplainOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	text, err := readDump(cmd, path)
	if err != nil {
		return outputError(formatter, ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("reading dump: %v", err))
	}

	passes := segment.Split(text)
	if opts.Pass < 0 || opts.Pass >= len(passes) {
		return outputError(formatter, ExitFailure, ErrCodePassIndex,
			fmt.Sprintf("pass index %d out of range (dump has %d pass(es))", opts.Pass, len(passes)))
	}
	pass := passes[opts.Pass]

	explainer := newExplainer(opts.Model, formatter)

	result := ExplainResult{Pass: pass.Name, NodeID: opts.Node}
	if opts.Node == "" {
		result.Explanation, err = explainer.ExplainPass(cmd.Context(), pass.Name, pass.Content)
	} else {
		g := graph.Build(pass.Content)
		node := g.Node(opts.Node)
		if node == nil {
			return outputError(formatter, ExitFailure, ErrCodeNodeLookup, fmt.Sprintf("node %s not found in pass %q", opts.Node, pass.Name))
		}
		result.Explanation, err = explainer.ExplainNode(cmd.Context(), node, g.Context(node.SourceLine, opts.Radius))
	}
	if err != nil {
		formatter.VerboseLog("explanation failed: %v", err)
		result.Explanation = explain.Placeholder
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if result.NodeID != "" {
		fmt.Fprintf(formatter.Writer, "%s in pass %q:\n\n", result.NodeID, result.Pass)
	} else {
		fmt.Fprintf(formatter.Writer, "Pass %q:\n\n", result.Pass)
	}
	fmt.Fprintln(formatter.Writer, result.Explanation)

	return nil
}

// newExplainer builds the AI backend from the environment, falling back
// to the placeholder backend when no key is configured.
func newExplainer(model string, formatter *OutputFormatter) explain.Explainer {
	e, err := explain.NewOpenAIExplainer(os.Getenv("OPENAI_API_KEY"), model)
	if err != nil {
		formatter.VerboseLog("AI explanations disabled: %v", err)
		return explain.Disabled{}
	}
	return e
}
