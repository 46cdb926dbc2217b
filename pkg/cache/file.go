package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache keeps one JSON file per key under dir/<xx>/<sha256>.json.
// Each file records the original key, so entries can be listed and cleared
// per source ("github:", "pypi:").
type FileCache struct {
	dir string
}

// NewFileCache opens (and creates) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) Dir() string { return c.dir }

type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Entry describes a stored value without its payload.
type Entry struct {
	Key       string
	Size      int
	ExpiresAt time.Time
	Expired   bool
}

// Source is the key prefix up to and including the first colon, or "" if
// the key has none.
func (e Entry) Source() string {
	if i := strings.IndexByte(e.Key, ':'); i >= 0 {
		return e.Key[:i+1]
	}
	return ""
}

// Get returns a stored value. Corrupt and expired files are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var entry fileEntry
	if json.Unmarshal(raw, &entry) != nil || entry.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Entries lists every readable entry. Unreadable files are skipped.
func (c *FileCache) Entries() ([]Entry, error) {
	var out []Entry
	now := time.Now()
	err := c.walk(func(_ string, e fileEntry) {
		if e.Key == "" {
			return
		}
		out = append(out, Entry{Key: e.Key, Size: len(e.Data), ExpiresAt: e.ExpiresAt, Expired: e.expired(now)})
	})
	return out, err
}

// Clear removes every file in the cache and returns how many were removed.
// The cache directory itself is kept.
func (c *FileCache) Clear() (int, error) {
	return c.remove(func(string, fileEntry) bool { return true })
}

// ClearSource removes the entries whose key starts with source.
func (c *FileCache) ClearSource(source string) (int, error) {
	return c.remove(func(_ string, e fileEntry) bool { return strings.HasPrefix(e.Key, source) })
}

// Prune removes expired entries.
func (c *FileCache) Prune() (int, error) {
	now := time.Now()
	return c.remove(func(_ string, e fileEntry) bool { return e.expired(now) })
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) remove(match func(string, fileEntry) bool) (int, error) {
	var paths []string
	err := c.walk(func(path string, e fileEntry) {
		if match(path, e) {
			paths = append(paths, path)
		}
	})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range paths {
		if os.Remove(p) == nil {
			n++
			_ = os.Remove(filepath.Dir(p)) // only succeeds once the shard is empty
		}
	}
	return n, nil
}

// walk visits every entry file. Files that fail to decode are passed with
// an empty entry so Clear can still remove them.
func (c *FileCache) walk(fn func(path string, e fileEntry)) error {
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		e, _ := readEntry(path)
		fn(path, e)
		return nil
	})
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func readEntry(path string) (fileEntry, error) {
	var e fileEntry
	raw, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(raw, &e)
	return e, err
}

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(sum[:])
	return filepath.Join(c.dir, name[:2], name[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
