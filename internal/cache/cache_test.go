package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected a miss on an empty cache")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, found := c.Get("k")
	if !found || string(data) != "v" {
		t.Errorf("expected hit with value v, got %q (found=%v)", data, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected a miss after delete")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("expected a cleared")
	}
	if _, found := c.Get("b"); found {
		t.Error("expected b cleared")
	}
}

func TestEmbeddingKey_BindsProviderAndModel(t *testing.T) {
	base := EmbeddingKey("openai", "text-embedding-3-small", "hello")

	if EmbeddingKey("openai", "text-embedding-3-small", "hello") != base {
		t.Error("expected identical inputs to produce identical keys")
	}
	if EmbeddingKey("openai", "text-embedding-3-large", "hello") == base {
		t.Error("expected a different model to change the key")
	}
	if EmbeddingKey("voyage", "text-embedding-3-small", "hello") == base {
		t.Error("expected a different provider to change the key")
	}
	if EmbeddingKey("openai", "text-embedding-3-small", "goodbye") == base {
		t.Error("expected different text to change the key")
	}
}
