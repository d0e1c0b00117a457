package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"convdup/internal/diag"
	"convdup/internal/source"
)

func TestDiskCachePutGet(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	payload := &DiskPayload{Schema: diskCacheSchemaVersion, Truncated: true, LOC: 7, Dropped: 2}
	if err := cache.Put(42, payload); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	ok, err := cache.Get(42, &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.LOC != 7 || !out.Truncated || out.Dropped != 2 || out.Schema != diskCacheSchemaVersion {
		t.Errorf("round trip mismatch: %+v", out)
	}

	ok, err = cache.Get(43, &out)
	if err != nil || ok {
		t.Errorf("missing key: ok=%v err=%v", ok, err)
	}

	name := Digest(42).String()
	entries, err := os.ReadDir(filepath.Join(cache.Dir(), "files", name[:2]))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != name+".mp" {
		t.Errorf("expected only the payload file, got %v", entries)
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(7, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cache.entryPath(7), []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	ok, err := cache.Get(7, &DiskPayload{})
	if ok || err == nil {
		t.Fatalf("corrupt entry: ok=%v err=%v", ok, err)
	}
}

func TestDiskCacheNil(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(1, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	ok, err := cache.Get(1, &DiskPayload{})
	if ok || err != nil {
		t.Fatalf("nil cache must miss silently: ok=%v err=%v", ok, err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "convdup"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(1, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(1, &DiskPayload{}); ok {
		t.Fatal("entry survived DropAll")
	}
	if err := cache.Put(2, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("cache must stay usable after DropAll: %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	cfg := defaultConfig(t)
	a := CacheKey([]byte("int a;"), cfg)
	if a != CacheKey([]byte("int a;"), cfg) {
		t.Fatal("key must be stable")
	}
	if a == CacheKey([]byte("int b;"), cfg) {
		t.Error("content must change the key")
	}
	other := *cfg
	other.Analysis.EnforceEnclosingScope = false
	if a == CacheKey([]byte("int a;"), &other) {
		t.Error("analysis options must change the key")
	}
}

func TestAnalyzeWithCache(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := defaultConfig(t)
	src := []byte("int user_id;\nint userId;\nint bad = \"open;\n")

	first := source.NewFileSet()
	cold := AnalyzeSource(context.Background(), first, first.AddVirtual("a.c", src), cfg, Options{Cache: cache})
	if cold.Cached {
		t.Fatal("first run cannot be cached")
	}

	// другой FileSet: FileID файла меняется, спаны должны перепривязаться
	second := source.NewFileSet()
	second.AddVirtual("other.c", []byte("int x;"))
	id := second.AddVirtual("a.c", src)
	warm := AnalyzeSource(context.Background(), second, id, cfg, Options{Cache: cache})
	if !warm.Cached {
		t.Fatal("second run should hit the cache")
	}

	if len(warm.Identifiers) != len(cold.Identifiers) {
		t.Fatalf("identifiers: cold %d, warm %d", len(cold.Identifiers), len(warm.Identifiers))
	}
	for i := range warm.Identifiers {
		w, c := warm.Identifiers[i], cold.Identifiers[i]
		if w.Name != c.Name || w.Kind != c.Kind || w.Span.Start != c.Span.Start || w.Pos != c.Pos {
			t.Errorf("identifier %d: cold %+v, warm %+v", i, c, w)
		}
		if w.Span.File != id {
			t.Errorf("identifier %d bound to file %d, want %d", i, w.Span.File, id)
		}
	}
	if warm.Stats != cold.Stats {
		t.Errorf("stats: cold %+v, warm %+v", cold.Stats, warm.Stats)
	}
	if warm.Findings() != 1 || cold.Findings() != 1 {
		t.Errorf("findings: cold %d, warm %d", cold.Findings(), warm.Findings())
	}

	items := warm.Bag.Items()
	if len(items) != len(cold.Bag.Items()) || len(items) == 0 {
		t.Fatalf("diagnostics: cold %v, warm %v", cold.Bag.Items(), items)
	}
	if items[0].Code != diag.LexUnterminatedString || items[0].Primary.File != id {
		t.Errorf("restored diagnostic %+v", items[0])
	}
}
