package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"irview/internal/graph"
	"irview/internal/ir"
	"irview/internal/segment"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Pass   int    // pass index to parse
	Output string // output file path
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <dump-file>",
		Short: "Extract the dependency graph from one pass of an IR dump",
		Long: `Parse one compilation pass of an IR dump into its dependency graph.

The dump is segmented first; --pass selects which pass to parse
(default 0). JSON output is the full graph; text output is a summary.
Use "-" to read the dump from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Pass, "pass", "p", 0, "pass index to parse")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runParse(opts *ParseOptions, path string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Parsing pass %d (%s)", opts.Pass, passes[opts.Pass].Name)
	g := graph.Build(passes[opts.Pass].Content)

	if opts.Output != "" {
		if err := writeGraphToFile(g, opts.Output); err != nil {
			return outputError(formatter, ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(g)
	}

	fmt.Fprintf(formatter.Writer, "✓ Parsed pass %q: %d node(s), %d edge(s), %d function(s)\n\n",
		passes[opts.Pass].Name, len(g.Nodes), len(g.Edges), len(g.Functions))

	for _, n := range g.Nodes {
		switch {
		case n.Opcode != "":
			fmt.Fprintf(formatter.Writer, "  %s %s = %s\n", n.Kind, n.ID, n.Opcode)
		case n.ResultType != "":
			fmt.Fprintf(formatter.Writer, "  %s %s : %s\n", n.Kind, n.ID, n.ResultType)
		default:
			fmt.Fprintf(formatter.Writer, "  %s %s\n", n.Kind, n.ID)
		}
	}

	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "\nWrote graph to %s\n", opts.Output)
	}

	return nil
}

// writeGraphToFile writes the graph to a file as indented JSON.
func writeGraphToFile(g *ir.Graph, filename string) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling graph: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
