package updater

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCache_Missing(t *testing.T) {
	cache, err := LoadCache(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache != nil {
		t.Error("expected nil cache for missing file")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	original := &VersionCache{
		LatestVersion:   "2.1.0",
		CurrentVersion:  "2.0.0",
		CheckedAt:       time.Now().Truncate(time.Second),
		UpdateAvailable: true,
	}
	if err := SaveCache(dir, original); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	loaded, err := LoadCache(dir)
	if err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}
	if loaded.LatestVersion != original.LatestVersion {
		t.Errorf("LatestVersion = %q, want %q", loaded.LatestVersion, original.LatestVersion)
	}
	if !loaded.UpdateAvailable {
		t.Error("UpdateAvailable lost in round trip")
	}
}

func TestLoadCache_Corrupted(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCache(dir); err == nil {
		t.Error("expected error for corrupted cache")
	}
}

func TestIsCacheStale(t *testing.T) {
	tests := []struct {
		name  string
		cache *VersionCache
		want  bool
	}{
		{"nil cache", nil, true},
		{"fresh", &VersionCache{CheckedAt: time.Now()}, false},
		{"stale", &VersionCache{CheckedAt: time.Now().Add(-25 * time.Hour)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCacheStale(tt.cache, DefaultCacheMaxAge); got != tt.want {
				t.Errorf("IsCacheStale = %v, want %v", got, tt.want)
			}
		})
	}
}
