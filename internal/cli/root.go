package cli

import (
	"fmt"
	"os"

	"github.com/anetops/anet-inventory/internal/branding"
	"github.com/anetops/anet-inventory/internal/config"
	"github.com/anetops/anet-inventory/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagList         bool
	flagHost         string
	flagAll          bool
	flagCloudServers bool
	flagImages       bool
	flagPlans        bool
	flagSSHKeys      bool
	flagPretty       bool
	flagEnv          bool
	flagConfig       string
	flagCachePath    string
	flagCacheMaxAge  int
	flagForceCache   bool
	flagRefreshCache bool
	flagAPIToken     string
	flagAPIKey       string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: `Produce an Ansible inventory from Atlantic.Net cloud servers.

Ansible invokes this binary with --list or --host <id>. Settings are read
from ` + branding.IniFile() + `, then environment variables, then flags; API responses
are cached in <cache_path>/` + branding.CacheFile() + `.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The update command manages its own cache state.
		if cmd.Name() == "update" {
			return
		}
		if os.Getenv(branding.EnvVar("NO_UPDATE_CHECK")) != "" {
			return
		}

		// Non-blocking banner from the cached release check.
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(os.Stderr, config.Dir())
	},
	RunE: runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&flagList, "list", false, "List all active cloud servers as Ansible inventory (default)")
	f.StringVar(&flagHost, "host", "", "Get all Ansible inventory variables for a specific cloud server")
	f.BoolVar(&flagAll, "all", false, "List all Atlantic.Net information as JSON")
	f.BoolVarP(&flagCloudServers, "cloudservers", "c", false, "List cloud servers as JSON")
	f.BoolVar(&flagImages, "images", false, "List images as JSON")
	f.BoolVar(&flagPlans, "plans", false, "List plans as JSON")
	f.BoolVar(&flagSSHKeys, "ssh-keys", false, "List SSH keys as JSON")
	f.BoolVarP(&flagPretty, "pretty", "p", false, "Pretty-print results")
	f.BoolVarP(&flagEnv, "env", "e", false, "Print "+config.EnvAPIToken+" and "+config.EnvAPIKey+" export lines")
	f.StringVar(&flagConfig, "config", "", "Path to the settings file (default: "+branding.IniFile()+" beside the binary)")
	f.StringVar(&flagCachePath, "cache-path", "", "Directory for the cache file (overrides the settings file)")
	f.IntVar(&flagCacheMaxAge, "cache-max-age", 0, "Maximum cache age in seconds (overrides the settings file)")
	f.BoolVar(&flagForceCache, "force-cache", false, "Only use data from the cache")
	f.BoolVarP(&flagRefreshCache, "refresh-cache", "r", false, "Force a cache refresh with fresh API data")
	f.StringVar(&flagAPIToken, "api-token", "", "Atlantic.Net public key (API token)")
	f.StringVar(&flagAPIKey, "api-key", "", "Atlantic.Net private key")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
