package driver

import (
	"context"
	"path/filepath"
	"testing"

	"cclex/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	content := "int x = 1..; char *s = \"ok\";"
	opts := Options{MaxDiagnostics: 10, Cache: cache}

	first := TokenizeSource(context.Background(), "a.c", []byte(content), opts)
	if first.Cached {
		t.Fatalf("first run cannot be cached")
	}
	second := TokenizeSource(context.Background(), "a.c", []byte(content), opts)
	if !second.Cached {
		t.Fatalf("second run must hit the cache")
	}

	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token count differs: %d vs %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		if a.Kind != b.Kind || a.Text != b.Text || a.Span.Start != b.Span.Start || a.Span.End != b.Span.End {
			t.Errorf("token %d differs: %+v vs %+v", i, a, b)
		}
	}
	if first.Bag.Len() != second.Bag.Len() || first.Bag.Len() != 3 {
		t.Fatalf("diagnostics differ: %d vs %d", first.Bag.Len(), second.Bag.Len())
	}
	if second.Bag.Items()[1].Message != first.Bag.Items()[1].Message {
		t.Errorf("diagnostic message lost")
	}

	other := TokenizeSource(context.Background(), "a.c", []byte(content), Options{MaxDiagnostics: 1, Cache: cache})
	if other.Cached {
		t.Errorf("a different diagnostics cap must not share cache entries")
	}
}

func TestDiskCacheRejectsForeignPayload(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("x.c", []byte("abc")))
	key := CacheKey(f, 10)

	bad := &DiskPayload{Schema: diskCacheSchemaVersion, ContentHash: f.Hash, Kinds: []uint8{1}, Starts: []uint32{0}, Ends: []uint32{99}}
	if err := cache.Put(key, bad); err != nil {
		t.Fatal(err)
	}
	var got DiskPayload
	hit, err := cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if _, _, err := scanFromPayload(f, &got, 10); err == nil {
		t.Fatalf("out-of-range payload accepted")
	}

	old := &DiskPayload{Schema: diskCacheSchemaVersion + 1}
	if err := cache.Put(key, old); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Get(key, &got); hit {
		t.Fatalf("payload of another schema must be a miss")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{MaxDiagnostics: 5, Cache: cache}
	TokenizeSource(context.Background(), "a.c", []byte("int a;"), opts)
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if TokenizeSource(context.Background(), "a.c", []byte("int a;"), opts).Cached {
		t.Fatalf("cache must be empty after DropAll")
	}

	var nilCache *DiskCache
	if hit, err := nilCache.Get(Digest{}, &DiskPayload{}); hit || err != nil {
		t.Fatalf("nil cache must miss")
	}
}
