package datasource

import (
	"encoding/json"
	"sync"

	"github.com/gabpaderog/maxicoffee-admin/internal/query"
)

// Cache memoizes the most recent page per request shape and single-entity
// reads, so identical queries within one session skip the upstream round
// trip. It is unbounded, never persisted, and cleared wholesale whenever a
// write on the owning data source succeeds.
type Cache[T any] struct {
	mu    sync.Mutex
	pages map[string]Page[T]
	ones  map[int]T
}

func NewCache[T any]() *Cache[T] {
	return &Cache[T]{
		pages: make(map[string]Page[T]),
		ones:  make(map[int]T),
	}
}

// specKey serializes the request shape. Spec is a plain struct, so the
// encoding is canonical per shape.
func specKey(spec query.Spec) string {
	key, err := json.Marshal(spec)
	if err != nil {
		return ""
	}
	return string(key)
}

func (c *Cache[T]) GetPage(spec query.Spec) (Page[T], bool) {
	key := specKey(spec)
	if key == "" {
		return Page[T]{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	page, ok := c.pages[key]
	return page, ok
}

func (c *Cache[T]) PutPage(spec query.Spec, page Page[T]) {
	key := specKey(spec)
	if key == "" {
		return
	}
	c.mu.Lock()
	c.pages[key] = page
	c.mu.Unlock()
}

func (c *Cache[T]) GetOne(id int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.ones[id]
	return v, ok
}

func (c *Cache[T]) PutOne(id int, v T) {
	c.mu.Lock()
	c.ones[id] = v
	c.mu.Unlock()
}

// Invalidate drops every memoized result for this data source.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.pages = make(map[string]Page[T])
	c.ones = make(map[int]T)
	c.mu.Unlock()
}
