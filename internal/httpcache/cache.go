package httpcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tpham/dailycard/internal/telemetry"
)

// Policy describes one cache's validity rule (§4.2's table).
type Policy struct {
	// TTL is a wall-clock validity window. Zero means "not time-based" —
	// use DateGated instead.
	TTL time.Duration
	// DateGated means the entry is valid iff its stored CacheDate equals
	// the date being looked up (rankings, research, team four-factors).
	DateGated bool
}

var (
	PolicyOddsHourly    = Policy{TTL: time.Hour}
	PolicyDateGated     = Policy{DateGated: true}
	PolicyModelDaily    = Policy{TTL: 24 * time.Hour}
)

type entry struct {
	CacheDate string          `json:"cache_date"`
	StoredAt  time.Time       `json:"stored_at"`
	Data      json.RawMessage `json:"data"`
}

// Cache is a persistent, on-disk JSON key-value store (§4.2: "All caches
// are persistent (on-disk JSON) and survive process restarts"). One Cache
// instance backs one file. The CLI opens a single data/cache/httpcache.json
// that the odds and rankings sources share; there are no separate per-kind
// cache files.
type Cache struct {
	path    string
	mu      sync.Mutex
	entries map[string]entry
}

// Open loads (or creates) the on-disk cache file at path.
func Open(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]entry)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		// Cache read failure: log, treat as miss, refetch (§7).
		telemetry.Warnf("httpcache: read %s failed, treating as empty cache: %v", path, err)
		return c, nil
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		telemetry.Warnf("httpcache: corrupt cache %s, treating as empty: %v", path, err)
		c.entries = make(map[string]entry)
	}
	return c, nil
}

// Get returns the cached value for key if it's still valid under policy
// for the given date, and bumps the global cache-hit/miss counters.
func (c *Cache) Get(key string, date time.Time, policy Policy, out any) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		telemetry.Metrics.CacheMisses.Inc()
		return false
	}

	if policy.DateGated && e.CacheDate != date.Format("2006-01-02") {
		telemetry.Metrics.CacheMisses.Inc()
		return false
	}
	if policy.TTL > 0 && time.Since(e.StoredAt) > policy.TTL {
		telemetry.Metrics.CacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal(e.Data, out); err != nil {
		telemetry.Warnf("httpcache: corrupt entry for key %q: %v", key, err)
		telemetry.Metrics.CacheMisses.Inc()
		return false
	}
	telemetry.Metrics.CacheHits.Inc()
	return true
}

// Set writes a value even when upstream only returned partial data — the
// point is to avoid re-punishing a successful batch after one failure
// (§4.2: "Cache writes occur even when upstream returned partial data").
func (c *Cache) Set(key string, date time.Time, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = entry{
		CacheDate: date.Format("2006-01-02"),
		StoredAt:  time.Now(),
		Data:      data,
	}
	snapshot := c.entries
	c.mu.Unlock()

	return c.flush(snapshot)
}

// Invalidate drops one key. (--force-refresh uses InvalidateAll.)
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll drops every entry, used by a blanket --force-refresh run.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

func (c *Cache) flush(entries map[string]entry) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
