package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// DefaultCacheSize is the default bound on cached responses.
const DefaultCacheSize = 256

// Cache is a bounded, concurrency-safe store of raw completion responses
// keyed by request payload. Entries live for the process lifetime or until
// evicted by the LRU policy.
type Cache struct {
	entries *lru.Cache[string, string]
}

// NewCache creates a response cache holding at most size entries. A size of
// zero or less selects DefaultCacheSize.
func NewCache(size int) (cache *Cache, err error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	var entries *lru.Cache[string, string]
	entries, err = lru.New[string, string](size)
	if err != nil {
		err = errors.Wrap(err, "failed to create response cache")
		return cache, err
	}

	cache = &Cache{entries: entries}
	return cache, err
}

// Get returns the cached response text for key, if present.
func (c *Cache) Get(key string) (text string, ok bool) {
	text, ok = c.entries.Get(key)
	return text, ok
}

// Put stores the response text for key, evicting the least recently used
// entry when the cache is full.
func (c *Cache) Put(key, text string) {
	c.entries.Add(key, text)
}

// Len returns the number of cached entries.
func (c *Cache) Len() (n int) {
	n = c.entries.Len()
	return n
}

// cacheKeyPayload fixes the set and order of parameters that affect the
// response. Hashing its JSON encoding gives a stable key regardless of how
// the request was assembled.
type cacheKeyPayload struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	WantJSON    bool      `json:"want_json"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// cacheKey derives the cache key for a request with the model default already
// applied.
func cacheKey(req CompletionRequest) (key string) {
	payload := cacheKeyPayload{
		Messages:    req.Messages,
		Model:       req.Model,
		WantJSON:    req.WantJSON,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	// Struct field order is fixed, so the encoding is canonical.
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	key = hex.EncodeToString(sum[:])

	return key
}
