package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// headerSize is the expiry prefix of every entry file: unix nanoseconds,
// big endian, zero for entries that never expire. The payload follows raw,
// so large PNG and PDF artifacts are stored without re-encoding.
const headerSize = 8

// FileCache stores one file per key under a directory. Files are sharded by
// the first two hex digits of the key hash and written atomically, so a
// concurrent reader sees either the old entry or the new one.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < headerSize || c.expired(raw) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[headerSize:], true, nil
}

func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	buf := make([]byte, headerSize+len(data))
	if ttl > 0 {
		binary.BigEndian.PutUint64(buf, uint64(c.now().Add(ttl).UnixNano()))
	}
	copy(buf[headerSize:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Usage is the on-disk footprint of a FileCache.
type Usage struct {
	Entries int
	Bytes   int64
	Expired int
}

// Usage walks the cache directory. Unreadable files are skipped.
func (c *FileCache) Usage() (Usage, error) {
	var u Usage
	err := c.walk(func(path string, raw []byte) {
		u.Entries++
		u.Bytes += int64(len(raw))
		if len(raw) < headerSize || c.expired(raw) {
			u.Expired++
		}
	})
	return u, err
}

// Prune removes expired and truncated entries and returns how many it removed.
func (c *FileCache) Prune() (int, error) {
	n := 0
	err := c.walk(func(path string, raw []byte) {
		if len(raw) >= headerSize && !c.expired(raw) {
			return
		}
		if os.Remove(path) == nil {
			n++
		}
	})
	return n, err
}

// Clear removes every entry and recreates the empty directory.
func (c *FileCache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Close() error { return nil }

func (c *FileCache) expired(raw []byte) bool {
	at := int64(binary.BigEndian.Uint64(raw[:headerSize]))
	return at != 0 && c.now().UnixNano() > at
}

func (c *FileCache) walk(fn func(path string, raw []byte)) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".bin" {
			return nil
		}
		if raw, err := os.ReadFile(path); err == nil {
			fn(path, raw)
		}
		return nil
	})
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".bin")
}

var _ Cache = (*FileCache)(nil)
