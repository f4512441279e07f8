package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/attributes.yaml")
	require.NoError(t, err)
	assert.Equal(t, "attribute_binding", s.Name)
	assert.Equal(t, []string{"Lower IR"}, s.ExpectPasses)
	require.Len(t, s.Assertions, 3)
	assert.Equal(t, AssertNodeExists, s.Assertions[0].Type)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadScenarioUnknownField(t *testing.T) {
	path := writeScenarioFile(t, `
name: typo
description: "has a typo"
dump: "store(%1)"
assertion:
  - type: node_count
    count: 1
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioMissingName(t *testing.T) {
	path := writeScenarioFile(t, `
description: "no name"
dump: "store(%1)"
assertions:
  - type: node_count
    count: 1
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenarioNoChecks(t *testing.T) {
	path := writeScenarioFile(t, `
name: empty
description: "nothing to check"
dump: "store(%1)"
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one assertion")
}

func TestLoadScenarioBadAssertion(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing type",
			yaml: "assertions:\n  - id: \"%1\"\n",
			want: "type is required",
		},
		{
			name: "unknown type",
			yaml: "assertions:\n  - type: trace_contains\n    id: \"%1\"\n",
			want: "unknown assertion type",
		},
		{
			name: "edge without endpoints",
			yaml: "assertions:\n  - type: edge_exists\n    from: \"%1\"\n",
			want: "from and to are required",
		},
		{
			name: "node_exists without id",
			yaml: "assertions:\n  - type: node_exists\n    opcode: load\n",
			want: "id is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScenarioFile(t, "name: bad\ndescription: \"bad assertion\"\ndump: \"store(%1)\"\n"+tc.yaml)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
