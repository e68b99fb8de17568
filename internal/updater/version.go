package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// IsUpdateAvailable reports whether latest is strictly newer than current.
// Both sides tolerate a leading "v".
func IsUpdateAvailable(current, latest string) (bool, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseSemver(latest)
	if err != nil {
		return false, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.LessThan(lv), nil
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
