package config

import (
	"os"
	"path/filepath"

	"github.com/anetops/anet-inventory/internal/branding"
)

// Dir returns the per-user state directory (~/.anet-inventory/), used for
// the release-check cache.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// DefaultPath returns the settings file consulted when --config is not
// given: $ANET_INI_PATH if set, otherwise anet_inventory.ini next to the
// executable. Ansible copies the inventory binary and its ini file into the
// same directory, so the executable's directory is the natural anchor.
func DefaultPath() string {
	if p := os.Getenv(branding.EnvVar("INI_PATH")); p != "" {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		return branding.IniFile()
	}
	return filepath.Join(filepath.Dir(exe), branding.IniFile())
}
