// Package file stores storedesk settings as a TOML file on disk,
// by default ~/.storedesk/config.toml.
package file
