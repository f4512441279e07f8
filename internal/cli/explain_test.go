package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irview/internal/explain"
)

func TestExplainWithoutKeyPrintsPlaceholder(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeDumpFile(t, sampleDump)

	out, err := executeCommand(t, "explain", path)
	require.NoError(t, err)
	assert.Contains(t, out, explain.Placeholder)
}

func TestExplainNodeWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeDumpFile(t, sampleDump)

	out, err := executeCommand(t, "--format", "json", "explain", path, "--node", "%1")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   ExplainResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "%1", resp.Data.NodeID)
	assert.Equal(t, "Pass A", resp.Data.Pass)
	assert.Equal(t, explain.Placeholder, resp.Data.Explanation)
}

func TestExplainUnknownNode(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeDumpFile(t, sampleDump)

	out, err := executeCommand(t, "explain", path, "--node", "%404")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E003")
}

func TestExplainPassOutOfRange(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeDumpFile(t, sampleDump)

	_, err := executeCommand(t, "explain", path, "--pass", "9")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
