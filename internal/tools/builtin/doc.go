// Package builtin provides the tools shipped with toolbridge.
//
// Tools:
//   - calculator: arithmetic over a list of operands
//   - weather: deterministic mock weather report for a location
//   - text: simple string transformations and counts
package builtin
