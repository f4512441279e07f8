package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = "###\n###Pass A:\nlet %1 : Int = load(%0)\n###\n###Pass B:\nstore(%1)\n"

func TestPassesText(t *testing.T) {
	path := writeDumpFile(t, sampleDump)

	out, err := executeCommand(t, "passes", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 pass(es)")
	assert.Contains(t, out, "Pass A")
	assert.Contains(t, out, "Pass B")
}

func TestPassesJSON(t *testing.T) {
	path := writeDumpFile(t, sampleDump)

	out, err := executeCommand(t, "--format", "json", "passes", path)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   PassListing `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Count)
	require.Len(t, resp.Data.Passes, 2)
	assert.Equal(t, "Pass A", resp.Data.Passes[0].Name)
}

func TestPassesFromStdin(t *testing.T) {
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewBufferString(sampleDump))
	cmd.SetArgs([]string{"passes", "-"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "2 pass(es)")
}

func TestPassesMissingFile(t *testing.T) {
	_, err := executeCommand(t, "passes", "does-not-exist.txt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
