package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// RenderKey generates a cache key for a rendered figure: the figure's raw
// bytes plus every option that affects output. The key format is
// render:hash(parts...).
func RenderKey(figure []byte, parts ...interface{}) string {
	all := append([]interface{}{string(figure)}, parts...)
	data, _ := json.Marshal(all)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions.
	return fmt.Sprintf("render:%s", hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
