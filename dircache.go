package xdgtheme

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// dirCache keeps a per-base-directory listing of every file underneath it,
// so repeated icon probes become map hits instead of stat calls. Entries
// are revalidated against the base directory's mtime at most once per
// interval; a listing is only a best-effort snapshot and concurrent theme
// installs are tolerated, not tracked.
type dirCache struct {
	mu       sync.RWMutex
	entries  map[string]*dirCacheEntry
	interval time.Duration
}

type dirCacheEntry struct {
	files    map[string]bool
	mtime    time.Time
	lastStat time.Time
}

func newDirCache(interval time.Duration) *dirCache {
	return &dirCache{
		entries:  make(map[string]*dirCacheEntry),
		interval: interval,
	}
}

// fileExists satisfies Engine.FileExists.
func (dc *dirCache) fileExists(baseDir, path string) bool {
	dc.mu.RLock()
	entry, ok := dc.entries[baseDir]
	dc.mu.RUnlock()

	now := time.Now()
	if !ok || now.Sub(entry.lastStat) >= dc.interval {
		if dc.shouldRefresh(baseDir, entry, now) {
			entry = dc.scan(baseDir)
		} else if entry != nil {
			dc.mu.Lock()
			entry.lastStat = now
			dc.mu.Unlock()
		}
	}

	if entry == nil {
		return false
	}

	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return entry.files[path]
}

func (dc *dirCache) shouldRefresh(baseDir string, entry *dirCacheEntry, now time.Time) bool {
	if entry == nil {
		return true
	}
	if now.Sub(entry.lastStat) < dc.interval {
		return false
	}
	st, err := os.Stat(baseDir)
	if err != nil {
		dc.mu.Lock()
		delete(dc.entries, baseDir)
		dc.mu.Unlock()
		return false
	}
	return !st.ModTime().Equal(entry.mtime)
}

// scan walks baseDir and replaces its entry. An unreadable base directory
// yields a nil entry, which reads as "nothing exists here".
func (dc *dirCache) scan(baseDir string) *dirCacheEntry {
	st, err := os.Stat(baseDir)
	if err != nil {
		return nil
	}

	files := make(map[string]bool)
	_ = filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			files[path] = true
		}
		return nil
	})

	entry := &dirCacheEntry{
		files:    files,
		mtime:    st.ModTime(),
		lastStat: time.Now(),
	}
	dc.mu.Lock()
	dc.entries[baseDir] = entry
	dc.mu.Unlock()
	return entry
}
