package updater

import (
	"fmt"
	"io"
	"time"

	"github.com/anetops/anet-inventory/internal/branding"
)

// CheckAndPrintBanner checks the version cache and prints an update banner
// to w if a newer version is known. It never blocks on the network: a stale
// cache is refreshed by a background goroutine for the next invocation.
func (u *Updater) CheckAndPrintBanner(w io.Writer, stateDir string) {
	cache, err := LoadCache(stateDir)
	if err != nil {
		// A broken cache must not break an inventory run.
		return
	}

	if cache != nil && cache.UpdateAvailable {
		fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", cache.CurrentVersion, cache.LatestVersion)
		fmt.Fprintf(w, "    Run `%s update` for details\n\n", branding.CLIName())
	}

	if IsCacheStale(cache, DefaultCacheMaxAge) {
		go u.refreshCache(stateDir)
	}
}

// refreshCache fetches the latest version and updates the cache file.
// It runs in the background and never fails loudly.
func (u *Updater) refreshCache(stateDir string) {
	release, err := u.CheckLatestVersion()
	if err != nil {
		return
	}

	available, err := IsUpdateAvailable(u.currentVersion, release.Version)
	if err != nil {
		return
	}

	_ = SaveCache(stateDir, &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	})
}
