// Package services implements the driving ports: lookups, catalogue
// maintenance, the recent-selection cache and settings. Services talk to
// storage and remote backends only through driven ports.
package services
