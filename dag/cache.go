package dag

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bitcomplete/revgraph/hashset"
	"github.com/bitcomplete/revgraph/render"
)

// DefaultCacheCapacity bounds every memoisation cache a Dag owns, per
// spec §6 ("LRU capacity ... default 1000").
const DefaultCacheCapacity = 1000

// memo memoises a pure function of a hashset.Set (or of no input) keyed
// by the set's contents. Cache entries belong to the Dag value they were
// built for: Dag.Add/Remove/etc. hand back a Dag with fresh, empty memo
// instances rather than mutating a shared cache, so a stale entry can
// never leak across Dag values. The underlying LRU is internally locked,
// so memo is safe to share across goroutines reading the same frozen Dag.
type memo[V any] struct {
	cache *lru.Cache[string, V]
}

func newMemo[V any](capacity int) *memo[V] {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	c, err := lru.New[string, V](capacity)
	if err != nil {
		// Only returns an error for a non-positive size, which newMemo
		// already guards against.
		panic(err)
	}
	return &memo[V]{cache: c}
}

func setKey(set hashset.Set) string {
	hashes := set.ToHashes()
	strs := make([]string, len(hashes))
	for i, h := range hashes {
		strs[i] = string(h)
	}
	return strings.Join(strs, "\x00")
}

func (m *memo[V]) get(key string, compute func() V) V {
	if v, ok := m.cache.Get(key); ok {
		return v
	}
	v := compute()
	m.cache.Add(key, v)
	return v
}

// lookup and store let callers whose compute step can fail (e.g. a sort
// that may surface ErrInvalidDag) avoid caching a failed attempt.
func (m *memo[V]) lookup(key string) (V, bool) {
	return m.cache.Get(key)
}

func (m *memo[V]) store(key string, v V) {
	m.cache.Add(key, v)
}

// caches bundles the per-Dag memoisation tables named in spec §5: roots,
// heads, all, subsetForRendering, defaultSortAscIndex, renderToRows.
type caches struct {
	roots      *memo[hashset.Set]
	heads      *memo[hashset.Set]
	all        *memo[hashset.Set]
	subset     *memo[hashset.Set]
	sortAsc    *memo[[]Hash]
	renderRows *memo[[]render.GraphRow]
}

func newCaches() *caches {
	return &caches{
		roots:      newMemo[hashset.Set](DefaultCacheCapacity),
		heads:      newMemo[hashset.Set](DefaultCacheCapacity),
		all:        newMemo[hashset.Set](DefaultCacheCapacity),
		subset:     newMemo[hashset.Set](DefaultCacheCapacity),
		sortAsc:    newMemo[[]Hash](DefaultCacheCapacity),
		renderRows: newMemo[[]render.GraphRow](DefaultCacheCapacity),
	}
}
