package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with the given args and returns
// captured stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeDumpFile writes dump text to a temp file and returns its path.
func writeDumpFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "irview", cmd.Use)
	assert.Contains(t, cmd.Short, "IR dump")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"passes", "parse", "explain", "serve"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestParseCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	parseCmd, _, err := cmd.Find([]string{"parse"})
	require.NoError(t, err)

	passFlag := parseCmd.Flags().Lookup("pass")
	require.NotNil(t, passFlag)
	assert.Equal(t, "p", passFlag.Shorthand)
	assert.Equal(t, "0", passFlag.DefValue)

	outputFlag := parseCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
}

func TestExplainCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	explainCmd, _, err := cmd.Find([]string{"explain"})
	require.NoError(t, err)

	nodeFlag := explainCmd.Flags().Lookup("node")
	require.NotNil(t, nodeFlag)

	radiusFlag := explainCmd.Flags().Lookup("radius")
	require.NotNil(t, radiusFlag)
	assert.Equal(t, "3", radiusFlag.DefValue)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	portFlag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)

	dbFlag := serveCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, err := executeCommand(t, "--format", "invalid", "passes", "nowhere.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
