// Package driving defines the interfaces the CLI, TUI, REST API and MCP
// server call into. internal/core/services implements them.
package driving
