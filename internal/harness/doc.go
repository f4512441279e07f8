// Package harness provides declarative conformance testing for the dump
// pipeline: segmentation plus graph extraction, driven by YAML scenario
// files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	dump: |
//	  ###
//	  ###Lower:
//	  [layout(%5)]
//	  let %9 : Void = typeLayout
//	pass: 0
//	expect_passes:
//	  - Lower
//	assertions:
//	  - type: node_exists
//	    id: "%9"
//	    opcode: typeLayout
//	  - type: edge_exists
//	    from: "%5"
//	    to: "%9"
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - node_exists: Verifies a node is present, with optional field matches
//   - node_absent: Verifies no node has the given id
//   - node_count: Verifies the total number of nodes
//   - edge_exists: Verifies at least one matching edge
//   - edge_count: Verifies a from/to pair appears exactly N times
//   - function_listed: Verifies a function id is in the function list
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/attributes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
