package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anetops/anet-inventory/internal/anet"
	"github.com/anetops/anet-inventory/internal/branding"
	"github.com/anetops/anet-inventory/internal/inventory"
)

// Data holds cached API responses by resource.
type Data struct {
	CloudServers []anet.CloudServer `json:"cloudservers,omitempty"`
	Images       []anet.Image       `json:"images,omitempty"`
	Plans        []anet.Plan        `json:"plans,omitempty"`
	SSHKeys      []anet.SSHKey      `json:"ssh_keys,omitempty"`
}

// Document is what gets persisted: the raw API data plus the most recently
// built inventory.
type Document struct {
	Data      Data                `json:"data"`
	Inventory *inventory.Document `json:"inventory,omitempty"`
}

// Empty reports whether the document carries no usable data.
func (d *Document) Empty() bool {
	return d == nil ||
		(len(d.Data.CloudServers) == 0 && len(d.Data.Images) == 0 &&
			len(d.Data.Plans) == 0 && len(d.Data.SSHKeys) == 0 &&
			d.Inventory == nil)
}

// Store reads and writes the inventory cache file.
type Store struct {
	path   string
	maxAge time.Duration
}

// New returns a store for <dir>/ansible-atlantic_net.cache with the given
// maximum age.
func New(dir string, maxAge time.Duration) *Store {
	return &Store{
		path:   filepath.Join(dir, branding.CacheFile()),
		maxAge: maxAge,
	}
}

// Path returns the cache file location.
func (s *Store) Path() string {
	return s.path
}

// Valid reports whether the cache file exists and is younger than the
// configured max age. A zero max age disables the cache: every run
// refetches.
func (s *Store) Valid() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < s.maxAge
}

// Load reads the cache document. A missing file returns nil, nil. A file
// that is unreadable, not JSON, or fails schema validation is an error;
// a half-trusted cache must never feed an inventory run.
func (s *Store) Load() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache %s: %w", s.path, err)
	}

	if err := verify(raw); err != nil {
		return nil, fmt.Errorf("cache %s: %w", s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing cache %s: %w", s.path, err)
	}
	return &doc, nil
}

// Save writes the cache document, creating the cache directory if needed.
func (s *Store) Save(doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing cache %s: %w", s.path, err)
	}
	return nil
}
