package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/panelctl/panelctl/internal/api"
)

const (
	cacheDirName  = "panelctl"
	cacheFileName = "catalog.json"
)

// CatalogFetcher abstracts the panel client for testability.
type CatalogFetcher interface {
	FetchEggs() ([]api.Egg, error)
	FetchNodes() ([]api.Node, error)
}

// Store is the on-disk cache format.
type Store struct {
	LastSynced time.Time  `json:"last_synced"`
	Eggs       []api.Egg  `json:"eggs"`
	Nodes      []api.Node `json:"nodes"`
}

// Cache keeps a local copy of the egg and node catalogs so list commands
// work offline and repeat lookups skip the network.
type Cache struct {
	path   string
	client CatalogFetcher
	store  Store
}

// New creates a cache backed by the default cache path.
func New(client CatalogFetcher) *Cache {
	return NewWithPath(client, defaultCachePath())
}

// NewWithPath creates a cache at a specific file path.
func NewWithPath(client CatalogFetcher, path string) *Cache {
	return &Cache{
		path:   path,
		client: client,
	}
}

// Load reads the cache from disk into memory.
//
// If the file does not exist or cannot be parsed, the cache starts empty.
func (c *Cache) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.store = Store{}
			return nil
		}

		return fmt.Errorf("read cache file %q: %w", c.path, err)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		c.store = Store{}
		return nil
	}

	c.store = store
	return nil
}

// Sync fetches both catalogs from the panel and writes them to disk.
// On network failure, the stale cache is preserved and the error returned.
func (c *Cache) Sync() error {
	eggs, err := c.client.FetchEggs()
	if err != nil {
		return fmt.Errorf("sync eggs: %w", err)
	}

	nodes, err := c.client.FetchNodes()
	if err != nil {
		return fmt.Errorf("sync nodes: %w", err)
	}

	c.store.Eggs = eggs
	c.store.Nodes = nodes
	c.store.LastSynced = time.Now().UTC()

	return c.save()
}

// Eggs returns the cached egg catalog.
func (c *Cache) Eggs() []api.Egg {
	result := make([]api.Egg, len(c.store.Eggs))
	copy(result, c.store.Eggs)

	return result
}

// Nodes returns the cached node catalog.
func (c *Cache) Nodes() []api.Node {
	result := make([]api.Node, len(c.store.Nodes))
	copy(result, c.store.Nodes)

	return result
}

// LastSynced returns the timestamp of the last successful sync.
func (c *Cache) LastSynced() time.Time {
	return c.store.LastSynced
}

// Count returns the number of cached catalog entries of both kinds.
func (c *Cache) Count() int {
	return len(c.store.Eggs) + len(c.store.Nodes)
}

// Clear removes the cache file and empties the in-memory store.
func (c *Cache) Clear() error {
	c.store = Store{}

	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache file %q: %w", c.path, err)
	}

	return nil
}

func (c *Cache) save() error {
	cacheDir := filepath.Dir(c.path)
	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		return fmt.Errorf("create cache directory %q: %w", cacheDir, err)
	}

	data, err := json.Marshal(c.store)
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file %q: %w", c.path, err)
	}

	return nil
}

func defaultCachePath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".cache", cacheDirName, cacheFileName)
	}

	return filepath.Join(cacheDir, cacheDirName, cacheFileName)
}
