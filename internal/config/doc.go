// Package config loads the anet_inventory.ini settings file into an
// immutable Settings value and resolves the Atlantic.Net credential chain
// across command-line flags, environment variables, and the file itself.
// A missing file is not an error; the tool runs with built-in defaults.
package config
