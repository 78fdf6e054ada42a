package loans

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CacheEntry is a dataset together with the file version it was read from
type CacheEntry struct {
	Dataset  *Dataset
	ModTime  time.Time
	Size     int64
	CachedAt time.Time
	HitCount int
}

// CacheStats is a snapshot of cache counters
type CacheStats struct {
	Entries   int   `json:"entries"`
	HitCount  int64 `json:"hit_count"`
	MissCount int64 `json:"miss_count"`
}

// Cache memoizes loaded datasets by source path. An entry stays valid while
// the file's modification time and size are unchanged; Reset and Invalidate
// drop entries explicitly. Concurrent misses for the same file version share
// a single load.
type Cache struct {
	loader    Loader
	entries   map[string]CacheEntry
	mutex     sync.RWMutex
	group     singleflight.Group
	hitCount  int64
	missCount int64
}

// NewCache creates a cache in front of loader
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[string]CacheEntry),
	}
}

// Get returns the dataset for path, loading it when absent or stale. The
// boolean result reports a cache hit.
func (c *Cache) Get(ctx context.Context, path string) (*Dataset, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	c.mutex.Lock()
	entry, ok := c.entries[path]
	if ok && entry.ModTime.Equal(info.ModTime()) && entry.Size == info.Size() {
		entry.HitCount++
		c.entries[path] = entry
		c.hitCount++
		c.mutex.Unlock()
		return entry.Dataset, true, nil
	}
	c.missCount++
	c.mutex.Unlock()

	key := fmt.Sprintf("%s@%d:%d", path, info.ModTime().UnixNano(), info.Size())
	ch := c.group.DoChan(key, func() (interface{}, error) {
		ds, err := c.loader.Load(context.WithoutCancel(ctx), path)
		if err != nil {
			return nil, err
		}
		c.mutex.Lock()
		c.entries[path] = CacheEntry{
			Dataset:  ds,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
			CachedAt: time.Now(),
		}
		c.mutex.Unlock()
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.(*Dataset), false, nil
	}
}

// Invalidate drops the entry for one source path
func (c *Cache) Invalidate(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, path)
}

// Reset drops every entry
func (c *Cache) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]CacheEntry)
}

// Stats returns the current counters
func (c *Cache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return CacheStats{
		Entries:   len(c.entries),
		HitCount:  c.hitCount,
		MissCount: c.missCount,
	}
}
