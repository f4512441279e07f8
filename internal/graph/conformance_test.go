package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"irview/internal/ir"
)

// conformanceSuite is a declarative set of parser cases loaded from
// testdata. Expectations are subset assertions: listed nodes and edges
// must be present, unlisted ones are not constrained unless node_count
// is given.
type conformanceSuite struct {
	Cases []conformanceCase `yaml:"cases"`
}

type conformanceCase struct {
	Name      string         `yaml:"name"`
	Input     string         `yaml:"input"`
	NodeCount *int           `yaml:"node_count,omitempty"`
	Nodes     []expectedNode `yaml:"nodes,omitempty"`
	Edges     []expectedEdge `yaml:"edges,omitempty"`
	Functions []string       `yaml:"functions,omitempty"`
}

type expectedNode struct {
	ID             string `yaml:"id"`
	Kind           string `yaml:"kind"`
	Opcode         string `yaml:"opcode,omitempty"`
	Void           bool   `yaml:"void,omitempty"`
	EnclosingBlock string `yaml:"enclosing_block,omitempty"`
}

type expectedEdge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// loadConformanceSuite parses the fixture with strict field validation,
// so a typo in the yaml fails the suite instead of silently passing.
func loadConformanceSuite(t *testing.T, path string) *conformanceSuite {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var suite conformanceSuite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	require.NoError(t, decoder.Decode(&suite))
	require.NotEmpty(t, suite.Cases)
	return &suite
}

func TestBuildConformance(t *testing.T) {
	suite := loadConformanceSuite(t, filepath.Join("testdata", "conformance.yaml"))

	for _, tc := range suite.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			g := Build(tc.Input)

			if tc.NodeCount != nil {
				assert.Len(t, g.Nodes, *tc.NodeCount)
			}
			for _, want := range tc.Nodes {
				n := g.Node(want.ID)
				require.NotNil(t, n, "expected node %s", want.ID)
				assert.Equal(t, ir.NodeKind(want.Kind), n.Kind, "kind of %s", want.ID)
				if want.Opcode != "" {
					assert.Equal(t, want.Opcode, n.Opcode, "opcode of %s", want.ID)
				}
				assert.Equal(t, want.Void, n.Void, "void flag of %s", want.ID)
				if want.EnclosingBlock != "" {
					assert.Equal(t, want.EnclosingBlock, n.EnclosingBlock, "enclosing block of %s", want.ID)
				}
			}
			for _, e := range tc.Edges {
				assert.Contains(t, g.Edges, ir.Edge{From: e.From, To: e.To})
			}
			if tc.Functions != nil {
				assert.Equal(t, tc.Functions, g.Functions)
			}
		})
	}
}
