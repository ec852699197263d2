// Package memory provides in-memory implementations of the driven ports.
// They back tests and the --ephemeral mode of the CLI.
package memory
