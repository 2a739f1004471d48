// Package ops is the name-addressable catalog of engine operations.
//
// Every pointwise and neighborhood operation is registered once under a
// stable snake_case name together with its input count and the parameter
// fields it reads. The MCP server and the CLI both dispatch through Lookup
// and Operation.Apply, so a new operation becomes available to both by
// registering it in catalog.go.
package ops
