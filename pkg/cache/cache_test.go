package cache

import (
	"context"
	"testing"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value")); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundtrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "absent"); hit {
		t.Error("empty cache reported a hit")
	}

	payload := []byte("\\begin{tikzpicture}\\end{tikzpicture}")
	if err := c.Set(ctx, "render:abc", payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, "render:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("stored key reported a miss")
	}
	if string(data) != string(payload) {
		t.Errorf("payload corrupted: %q", data)
	}

	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "render:abc"); hit {
		t.Error("deleted key still present")
	}

	// Deleting twice is not an error.
	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestRenderKey(t *testing.T) {
	fig := []byte(`{"data":[]}`)

	k1 := RenderKey(fig, "json", "a")
	k2 := RenderKey(fig, "json", "a")
	if k1 != k2 {
		t.Error("RenderKey should be deterministic")
	}

	if k1 == RenderKey(fig, "json", "b") {
		t.Error("different options should change the key")
	}
	if k1 == RenderKey([]byte(`{"data":[1]}`), "json", "a") {
		t.Error("different figures should change the key")
	}
}
