// Command irview inspects shader compiler IR dumps.
//
// Usage:
//
//	irview passes dump.txt
//	irview parse dump.txt --pass 2 --format json
//	irview explain dump.txt --node %9
//	irview serve --port :8080
package main

import (
	"log/slog"
	"os"

	"irview/internal/cli"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
