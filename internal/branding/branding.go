// Package branding provides compile-time identity values for the inventory
// tool: command name, environment variable prefix, settings file name, cache
// file name, and API endpoint. Values live in branding.yaml and are baked
// into the binary with //go:embed, with hard fallbacks if the file is empty.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	Description string `yaml:"description"`
	EnvPrefix   string `yaml:"env_prefix"`
	IniFile     string `yaml:"ini_file"`
	IniSection  string `yaml:"ini_section"`
	CacheFile   string `yaml:"cache_file"`
	APIBase     string `yaml:"api_base"`
	APIVersion  string `yaml:"api_version"`
	HomeDir     string `yaml:"home_dir"`
	GitHubRepo  string `yaml:"github_repo"`
	UserAgent   string `yaml:"user_agent"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "anet-inventory",
			Description: "Ansible dynamic inventory for Atlantic.Net cloud servers",
			EnvPrefix:   "ANET",
			IniFile:     "anet_inventory.ini",
			IniSection:  "atlantic_net",
			CacheFile:   "ansible-atlantic_net.cache",
			APIBase:     "https://cloudapi.atlantic.net/",
			APIVersion:  "2010-12-30",
			HomeDir:     ".anet-inventory",
			GitHubRepo:  "anetops/anet-inventory",
			UserAgent:   "anet-inventory",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "anet-inventory").
func CLIName() string { load(); return defaults.CLIName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "ANET").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// IniFile returns the settings file name (e.g., "anet_inventory.ini").
func IniFile() string { load(); return defaults.IniFile }

// IniSection returns the recognized settings section (e.g., "atlantic_net").
func IniSection() string { load(); return defaults.IniSection }

// CacheFile returns the inventory cache file name.
func CacheFile() string { load(); return defaults.CacheFile }

// APIBase returns the Atlantic.Net API endpoint URL.
func APIBase() string { load(); return defaults.APIBase }

// APIVersion returns the pinned Atlantic.Net API version date.
func APIVersion() string { load(); return defaults.APIVersion }

// HomeDir returns the dot-directory name under $HOME (e.g., ".anet-inventory").
func HomeDir() string { load(); return defaults.HomeDir }

// GitHubRepo returns the "owner/repo" string used for release checks.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// UserAgent returns the User-Agent header value for outbound requests.
func UserAgent() string { load(); return defaults.UserAgent }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("INI_PATH")
// becomes "ANET_INI_PATH".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
