package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching byte-serialized artifacts,
// primarily embedding vectors.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// EmbeddingKey generates a cache key for one statement's embedding. The key
// binds provider and model so switching embedding models never serves stale
// vectors.
func EmbeddingKey(provider, embedModel, text string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + embedModel + "\x00" + text))
	return "crux:emb:v1:" + hex.EncodeToString(hash[:])
}
