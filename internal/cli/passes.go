package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"irview/internal/ir"
	"irview/internal/segment"
)

// PassesOptions holds flags for the passes command.
type PassesOptions struct {
	*RootOptions
}

// PassListing is the JSON payload for the passes command.
type PassListing struct {
	Count  int       `json:"count"`
	Passes []ir.Pass `json:"passes"`
}

// NewPassesCommand creates the passes command.
func NewPassesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PassesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "passes <dump-file>",
		Short: "List the compilation passes in an IR dump",
		Long: `Split an IR dump into its compilation passes and list them.

A pass boundary is a line that is exactly "###" followed by a
"###<name>" line; content before the first boundary is reported as the
"Source" pass. Use "-" to read the dump from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasses(opts, args[0], cmd)
		},
	}

	return cmd
}

func runPasses(opts *PassesOptions, path string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("Segmented %d pass(es) from %s", len(passes), path)

	if formatter.Format == "json" {
		return formatter.Success(PassListing{Count: len(passes), Passes: passes})
	}

	fmt.Fprintf(formatter.Writer, "%d pass(es)\n\n", len(passes))
	for i, p := range passes {
		lines := 0
		if p.Content != "" {
			lines = strings.Count(p.Content, "\n") + 1
		}
		fmt.Fprintf(formatter.Writer, "  %2d: %s (%d line(s))\n", i, p.Name, lines)
	}

	return nil
}
