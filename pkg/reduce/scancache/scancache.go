// Package scancache memoizes [reduce.Scanner] verdicts by content hash, so
// repeated bisection steps over identical byte content (common once
// recursion depth exceeds the distinguishing bytes) skip the scanner
// entirely.
package scancache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/avreduce/avreduce/pkg/reduce"
)

// Cache wraps a [reduce.Scanner], memoizing its verdicts keyed by the
// sha256 of (filename, data). It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[[32]byte]bool
	next    reduce.Scanner
}

// Wrap returns a Cache delegating uncached scans to next.
func Wrap(next reduce.Scanner) *Cache {
	return &Cache{entries: make(map[[32]byte]bool), next: next}
}

var _ reduce.Scanner = (*Cache)(nil)

// Scan returns the memoized verdict for (filename, data) if present,
// otherwise delegates to the wrapped [reduce.Scanner] and stores the
// result. Errors from the wrapped scanner are never cached.
func (c *Cache) Scan(ctx context.Context, data []byte, filename string) (bool, error) {
	key := cacheKey(filename, data)

	c.mu.Lock()
	detected, ok := c.entries[key]
	c.mu.Unlock()

	if ok {
		return detected, nil
	}

	detected, err := c.next.Scan(ctx, data, filename)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.entries[key] = detected
	c.mu.Unlock()

	return detected, nil
}

// Len returns the number of memoized verdicts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func cacheKey(filename string, data []byte) [32]byte {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00", filename)
	h.Write(data)

	var key [32]byte
	copy(key[:], h.Sum(nil))

	return key
}
