package cache

// Cache is a concurrency-safe expiring key/value store. DeleteMatching
// exists because token eviction is keyed by target resource rather than by
// individual cache entry.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T, expiresAt int64)
	Delete(key string)
	DeleteMatching(match func(key string) bool)
	Close()
}
