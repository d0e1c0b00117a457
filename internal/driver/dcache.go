package driver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"convdup/internal/config"
	"convdup/internal/decl"
	"convdup/internal/diag"
	"convdup/internal/source"
	"convdup/internal/version"
)

// diskCacheSchemaVersion changes whenever DiskPayload does.
const diskCacheSchemaVersion uint16 = 1

// Digest identifies a cached per-file result.
type Digest uint64

func (d Digest) String() string { return fmt.Sprintf("%016x", uint64(d)) }

// CacheKey hashes the file content together with everything else that
// shapes the per-file result: the analysis config and the tool version.
func CacheKey(content []byte, cfg *config.Config) Digest {
	h := xxhash.New()
	_, _ = h.Write(content)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], cfg.Fingerprint())
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(version.Version)
	return Digest(h.Sum64())
}

// DiskCache stores per-file lexer and extractor output under
// <dir>/files/<xx>/<digest>.mp, sharded by the first digest byte.
type DiskCache struct {
	mu  sync.RWMutex // DropAll против одновременных Put/Get
	dir string
}

// DiskPayload is the cached part of a FileResult. Spans keep only their
// offsets; restorePayload rebinds the file ID.
type DiskPayload struct {
	Schema      uint16
	Identifiers []decl.Identifier
	Diagnostics []diag.Diagnostic
	Dropped     int
	Truncated   bool
	LOC         int
}

// OpenDiskCache opens the cache for app under the user cache directory
// ($XDG_CACHE_HOME or the platform default).
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate user cache dir: %w", err)
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it when missing.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) entryPath(key Digest) string {
	name := key.String()
	return filepath.Join(c.dir, "files", name[:2], name+".mp")
}

// Put stores payload under key. The entry appears atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "put-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	err = errors.Join(err, tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
	}
	return err
}

// Get loads the entry for key into out. A missing entry is a miss, not an
// error; a corrupt one is both.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// DropAll removes every entry; the cache stays usable afterwards.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

func newPayload(res *FileResult, loc int) *DiskPayload {
	return &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Identifiers: res.Identifiers,
		Diagnostics: res.Bag.Items(),
		Dropped:     res.Bag.Dropped(),
		Truncated:   res.Truncated,
		LOC:         loc,
	}
}

// restorePayload fills res from a cached payload, rebinding every span to
// file, and returns the cached line count.
func restorePayload(res *FileResult, file source.FileID, payload *DiskPayload) int {
	ids := payload.Identifiers
	for i := range ids {
		ids[i].Span.File = file
	}
	diags := payload.Diagnostics
	for i := range diags {
		diags[i].Primary.File = file
		for j := range diags[i].Notes {
			diags[i].Notes[j].Span.File = file
		}
	}
	res.Identifiers = ids
	res.Truncated = payload.Truncated
	res.Bag.Restore(diags, payload.Dropped)
	return payload.LOC
}
