package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitFailure, "something failed")
	assert.Equal(t, "something failed", err.Error())
	assert.Equal(t, ExitFailure, err.Code)

	wrapped := WrapExitError(ExitCommandError, "reading dump", errors.New("no such file"))
	assert.Equal(t, "reading dump: no such file", wrapped.Error())
	assert.Equal(t, "no such file", errors.Unwrap(wrapped).Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "inner"))))
}

func TestFormatterSuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]int{"nodes": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestFormatterSuccessText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success("done"))
	assert.Equal(t, "done\n", buf.String())
}

func TestFormatterErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error(ErrCodePassIndex, "pass index 9 out of range", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodePassIndex, resp.Error.Code)
}

func TestFormatterErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Error(ErrCodeReadFailed, "reading dump: no such file", nil))
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "no such file")
}

func TestVerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	quiet := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}
	quiet.VerboseLog("hidden %d", 1)
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())

	verbose := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	verbose.VerboseLog("visible %d", 2)
	assert.Empty(t, out.String())
	assert.Equal(t, "visible 2\n", errOut.String())
}
