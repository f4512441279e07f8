package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a dump, the pass to build
// a graph from, and assertions over the result.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dump is the raw dump text fed to the segmenter.
	Dump string `yaml:"dump"`

	// Pass selects which pass the graph is built from. Defaults to 0.
	Pass int `yaml:"pass,omitempty"`

	// ExpectPasses, when set, is the exact list of expected pass names.
	ExpectPasses []string `yaml:"expect_passes,omitempty"`

	// Assertions validate the extracted graph.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of the graph.
type Assertion struct {
	// Type specifies the assertion type:
	// - "node_exists": node with id is present; optional field matches
	// - "node_absent": no node has the given id
	// - "node_count": total node count equals Count
	// - "edge_exists": at least one From→To edge is present
	// - "edge_count": the From→To pair appears exactly Count times
	// - "function_listed": id appears in the graph's function list
	Type string `yaml:"type"`

	// ID is the node or function id (node_exists, node_absent,
	// function_listed).
	ID string `yaml:"id,omitempty"`

	// Kind, Opcode, ResultType and Block are optional field matches for
	// node_exists. Empty fields are not checked.
	Kind       string `yaml:"kind,omitempty"`
	Opcode     string `yaml:"opcode,omitempty"`
	ResultType string `yaml:"result_type,omitempty"`
	Block      string `yaml:"block,omitempty"`

	// From and To identify an edge (edge_exists, edge_count).
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`

	// Count is the expected number of occurrences (node_count,
	// edge_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertNodeExists     = "node_exists"
	AssertNodeAbsent     = "node_absent"
	AssertNodeCount      = "node_count"
	AssertEdgeExists     = "edge_exists"
	AssertEdgeCount      = "edge_count"
	AssertFunctionListed = "function_listed"
)

// LoadScenario reads and parses a scenario YAML file. Returns an error
// if the file doesn't exist, is malformed, contains unknown fields
// (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Pass < 0 {
		return fmt.Errorf("pass must be non-negative")
	}

	if len(s.Assertions) == 0 && len(s.ExpectPasses) == 0 {
		return fmt.Errorf("at least one assertion or expect_passes entry is required")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertNodeExists, AssertNodeAbsent, AssertFunctionListed:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for %s", index, a.Type)
		}
	case AssertNodeCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for node_count", index)
		}
	case AssertEdgeExists:
		if a.From == "" || a.To == "" {
			return fmt.Errorf("assertions[%d]: from and to are required for edge_exists", index)
		}
	case AssertEdgeCount:
		if a.From == "" || a.To == "" {
			return fmt.Errorf("assertions[%d]: from and to are required for edge_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for edge_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
