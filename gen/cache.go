package gen

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/tmplgen/log"
)

// maxCached is the number of scans kept before the cache is emptied.
const maxCached = 512

var (
	// parseCache stores scanned templates keyed by the hash of their text.
	parseCache sync.Map
	cached     atomic.Int64
)

// entry is a cached scan of one template text.
type entry struct {
	once   sync.Once
	text   string
	parsed *parsed
}

// parseCached scans text, reusing an earlier scan of the same text.
func parseCached(ctx context.Context, logger log.Logger, text string) *parsed {
	hash := xxh3.Hash([]byte(text))

	value, cacheHit := parseCache.LoadOrStore(hash, &entry{text: text})
	if !cacheHit && cached.Add(1) > maxCached {
		ClearCache()
	}

	e, ok := value.(*entry)

	logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Int("source_length", len(text)),
		slog.Bool("cache_hit", cacheHit),
	)

	// Colliding texts share a key; only the first one is cached.
	if !ok || e.text != text {
		return scan(text)
	}

	e.once.Do(func() { e.parsed = scan(text) })

	return e.parsed
}

// ClearCache removes all cached template scans.
func ClearCache() {
	parseCache.Clear()
	cached.Store(0)
}

// cacheLen returns the number of cached scans.
func cacheLen() int {
	n := 0

	parseCache.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}
