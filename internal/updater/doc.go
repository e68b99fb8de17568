// Package updater checks GitHub Releases for newer versions of the
// inventory binary. A daily-cached check powers the startup banner; the
// update command reports availability. Installation itself is left to
// whatever installed the binary.
package updater
