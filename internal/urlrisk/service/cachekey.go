package service

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const cacheKeyPrefix = "urlrisk:v1:"

// CacheKey derives the assessment cache key for a raw URL. The raw input is
// hashed as received, so cosmetic variants of one URL are cached separately.
func CacheKey(raw string) string {
	sum := blake2b.Sum256([]byte(raw))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
