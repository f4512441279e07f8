// Package ir provides the parsed-graph types for shader compiler IR dumps.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the IR model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Parse outputs are immutable; every reparse builds a fresh Graph
//   - Node order mirrors source order, so Graph keeps a slice plus an index
//   - Edges are derived from operands and type references and are never
//     deduplicated (the same pair can be recorded through multiple paths)
//   - All JSON tags use snake_case
package ir
