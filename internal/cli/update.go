package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/anetops/anet-inventory/internal/config"
	"github.com/anetops/anet-inventory/internal/updater"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer release",
	Long: `Checks GitHub releases for a newer version of the inventory binary and
reports the result. The check also refreshes the cache behind the startup
banner. Installation is left to your package manager or a manual download.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := updater.New(buildVersion)

		fmt.Fprintln(os.Stderr, "Checking for updates...")
		release, err := u.CheckLatestVersion()
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}

		available, err := updater.IsUpdateAvailable(buildVersion, release.Version)
		if err != nil {
			// Development builds have no comparable version.
			if buildVersion != "dev" {
				return fmt.Errorf("comparing versions: %w", err)
			}
			available = true
		}

		_ = updater.SaveCache(config.Dir(), &updater.VersionCache{
			LatestVersion:   release.Version,
			CurrentVersion:  buildVersion,
			CheckedAt:       time.Now(),
			UpdateAvailable: available,
		})

		out := cmd.OutOrStdout()
		if !available {
			fmt.Fprintf(out, "You are on the latest version (%s)\n", buildVersion)
			return nil
		}
		fmt.Fprintf(out, "Update available: %s -> %s\n", buildVersion, release.Version)
		if release.HTMLURL != "" {
			fmt.Fprintf(out, "Release notes: %s\n", release.HTMLURL)
		}
		return nil
	},
}
