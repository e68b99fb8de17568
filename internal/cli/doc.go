// Package cli defines the Cobra command surface. Ansible drives the tool
// through flags on the root command (--list, --host, and friends), so the
// root command itself carries the inventory logic; version and update are
// ordinary subcommands. Flag parsing and I/O formatting live here, business
// logic in the internal packages.
package cli
