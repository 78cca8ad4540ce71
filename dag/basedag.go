package dag

import (
	"github.com/bitcomplete/revgraph/hashset"
)

// Entry is one node to insert into a BaseDag: its hash, its payload, and
// the ordered hashes of its parents. Parents need not already be present
// in the BaseDag; the edge is recorded and resolved lazily when (if) the
// parent later appears, per spec §4.2.
type Entry[T any] struct {
	Hash    Hash
	Payload T
	Parents []Hash
}

// BaseDag is a generic parent/child adjacency store over a payload type,
// parameterised the way the source's generic DagCommitInfo store is
// (Go generics standing in for that parameterisation, per the source-note
// translation in spec §9). It is immutable: every mutating method returns
// a new *BaseDag, sharing the parts of the underlying maps that did not
// change membership in this call (copy-on-write at call granularity; see
// DESIGN.md for why this, and not a literal HAMT, is the idiomatic Go
// substitute).
type BaseDag[T any] struct {
	order    []Hash
	nodes    map[Hash]T
	parents  map[Hash][]Hash
	children map[Hash][]Hash
}

// NewBaseDag returns an empty BaseDag.
func NewBaseDag[T any]() *BaseDag[T] {
	return &BaseDag[T]{
		nodes:    map[Hash]T{},
		parents:  map[Hash][]Hash{},
		children: map[Hash][]Hash{},
	}
}

func (d *BaseDag[T]) clone() *BaseDag[T] {
	order := make([]Hash, len(d.order))
	copy(order, d.order)
	nodes := make(map[Hash]T, len(d.nodes))
	for k, v := range d.nodes {
		nodes[k] = v
	}
	parents := make(map[Hash][]Hash, len(d.parents))
	for k, v := range d.parents {
		parents[k] = v
	}
	children := make(map[Hash][]Hash, len(d.children))
	for k, v := range d.children {
		children[k] = v
	}
	return &BaseDag[T]{order: order, nodes: nodes, parents: parents, children: children}
}

// Add inserts or replaces entries by hash and returns the resulting
// BaseDag. Inserting a commit whose parents are not yet present is
// allowed; the child-edge is added lazily to whichever parent shows up
// (now or later).
func (d *BaseDag[T]) Add(entries []Entry[T]) *BaseDag[T] {
	if len(entries) == 0 {
		return d
	}
	out := d.clone()
	for _, e := range entries {
		if _, existed := out.nodes[e.Hash]; !existed {
			out.order = append(out.order, e.Hash)
		} else {
			// Replacing: drop this node from its old parents' children lists
			// before re-establishing edges from the new parent list.
			for _, p := range out.parents[e.Hash] {
				out.children[p] = removeHash(out.children[p], e.Hash)
			}
		}
		out.nodes[e.Hash] = e.Payload
		out.parents[e.Hash] = append([]Hash(nil), e.Parents...)
		for _, p := range e.Parents {
			out.children[p] = appendUnique(out.children[p], e.Hash)
		}
		if _, ok := out.children[e.Hash]; !ok {
			out.children[e.Hash] = nil
		}
	}
	return out
}

// Remove removes the hashes in set and any edges dangling from their
// removal. Edges from a remaining node to a removed parent are dropped;
// the remaining node's parent list no longer names it.
func (d *BaseDag[T]) Remove(set hashset.Set) *BaseDag[T] {
	if set.Size() == 0 {
		return d
	}
	out := d.clone()
	for _, h := range set.ToHashes() {
		if _, ok := out.nodes[h]; !ok {
			continue
		}
		for _, p := range out.parents[h] {
			out.children[p] = removeHash(out.children[p], h)
		}
		for _, c := range out.children[h] {
			out.parents[c] = removeHash(out.parents[c], h)
		}
		delete(out.nodes, h)
		delete(out.parents, h)
		delete(out.children, h)
		out.order = removeHash(out.order, h)
	}
	return out
}

func removeHash(s []Hash, h Hash) []Hash {
	out := make([]Hash, 0, len(s))
	for _, x := range s {
		if x != h {
			out = append(out, x)
		}
	}
	return out
}

func appendUnique(s []Hash, h Hash) []Hash {
	for _, x := range s {
		if x == h {
			return s
		}
	}
	// Full slice expression: never append into a backing array that a
	// previous BaseDag value (or a sibling clone) may still share.
	return append(s[:len(s):len(s)], h)
}

// Get returns the payload for h and whether it was present.
func (d *BaseDag[T]) Get(h Hash) (T, bool) {
	v, ok := d.nodes[h]
	return v, ok
}

// Has reports whether h is present in the BaseDag.
func (d *BaseDag[T]) Has(h Hash) bool {
	_, ok := d.nodes[h]
	return ok
}

// Values returns every payload, in insertion order.
func (d *BaseDag[T]) Values() []T {
	out := make([]T, 0, len(d.order))
	for _, h := range d.order {
		out = append(out, d.nodes[h])
	}
	return out
}

// All returns every hash currently present, in insertion order, as a Set.
func (d *BaseDag[T]) All() hashset.Set {
	return hashset.New(d.order...)
}

// ParentHashes returns h's recorded parent hashes, whether or not those
// parents are themselves present in the BaseDag.
func (d *BaseDag[T]) ParentHashes(h Hash) []Hash {
	return d.parents[h]
}

// ChildHashes returns the hashes that name h as a parent.
func (d *BaseDag[T]) ChildHashes(h Hash) []Hash {
	return d.children[h]
}

// Present intersects set with the hashes actually stored in the BaseDag.
func (d *BaseDag[T]) Present(set hashset.Set) hashset.Set {
	return set.Filter(func(h Hash) bool { return d.Has(h) })
}

// Parents returns the direct parents (within the BaseDag or not) of every
// hash in set, deduplicated, in traversal order.
func (d *BaseDag[T]) Parents(set hashset.Set) hashset.Set {
	var out []Hash
	for _, h := range set.ToHashes() {
		out = append(out, d.parents[h]...)
	}
	return hashset.New(out...)
}

// Children returns the direct children of every hash in set.
func (d *BaseDag[T]) Children(set hashset.Set) hashset.Set {
	var out []Hash
	for _, h := range set.ToHashes() {
		out = append(out, d.children[h]...)
	}
	return hashset.New(out...)
}

// Ancestors returns set and every hash reachable from it by following
// parent edges (reflexive transitive closure). If within is non-nil, the
// walk never steps outside *within.
func (d *BaseDag[T]) Ancestors(set hashset.Set, within *hashset.Set) hashset.Set {
	return d.walk(set, within, d.ParentHashes)
}

// Descendants returns set and every hash reachable from it by following
// child edges (reflexive transitive closure). If within is non-nil, the
// walk never steps outside *within.
func (d *BaseDag[T]) Descendants(set hashset.Set, within *hashset.Set) hashset.Set {
	return d.walk(set, within, d.ChildHashes)
}

func (d *BaseDag[T]) walk(start hashset.Set, within *hashset.Set, next func(Hash) []Hash) hashset.Set {
	visited := map[Hash]struct{}{}
	var order []Hash
	queue := start.ToHashes()
	for _, h := range queue {
		if _, ok := visited[h]; ok {
			continue
		}
		visited[h] = struct{}{}
		order = append(order, h)
	}
	for i := 0; i < len(order); i++ {
		for _, n := range next(order[i]) {
			if within != nil && !within.Contains(n) {
				continue
			}
			if _, ok := visited[n]; ok {
				continue
			}
			visited[n] = struct{}{}
			order = append(order, n)
		}
	}
	return hashset.New(order...)
}

// Range returns the commits reachable both forward from roots and
// backward from heads: descendants(roots) ∩ ancestors(heads).
func (d *BaseDag[T]) Range(roots, heads hashset.Set) hashset.Set {
	return d.Descendants(roots, nil).Intersect(d.Ancestors(heads, nil))
}

// Roots returns the hashes in set that have no parent within set.
func (d *BaseDag[T]) Roots(set hashset.Set) hashset.Set {
	return set.Filter(func(h Hash) bool {
		for _, p := range d.parents[h] {
			if set.Contains(p) {
				return false
			}
		}
		return true
	})
}

// Heads returns the hashes in set that have no child within set.
func (d *BaseDag[T]) Heads(set hashset.Set) hashset.Set {
	return set.Filter(func(h Hash) bool {
		for _, c := range d.children[h] {
			if set.Contains(c) {
				return false
			}
		}
		return true
	})
}

// IsAncestor reports whether a is an ancestor of (or equal to) d2.
func (d *BaseDag[T]) IsAncestor(a, d2 Hash) bool {
	return d.Ancestors(hashset.New(d2), nil).Contains(a)
}

// GCA returns the greatest common ancestors of s1 and s2: the heads of
// the intersection of their ancestor sets.
func (d *BaseDag[T]) GCA(s1, s2 hashset.Set) hashset.Set {
	common := d.Ancestors(s1, nil).Intersect(d.Ancestors(s2, nil))
	return d.Heads(common)
}

// Filter returns the hashes in scope (All() if scope is nil) for which
// keep returns true.
func (d *BaseDag[T]) Filter(keep func(T) bool, scope *hashset.Set) hashset.Set {
	var base hashset.Set
	if scope != nil {
		base = *scope
	} else {
		base = d.All()
	}
	return base.Filter(func(h Hash) bool {
		v, ok := d.nodes[h]
		return ok && keep(v)
	})
}

// SortOptions configures SortAsc/SortDesc.
type SortOptions[T any] struct {
	// Compare reports whether a sorts before b. If nil, ties are broken
	// by the order of the set being sorted.
	Compare func(a, b T) bool
	// Gap is not read by SortAsc or SortDesc.
	Gap int
}

// HasCycle reports whether the BaseDag's parent/child adjacency contains
// a cycle. Sort operations call this first and fail with ErrInvalidDag
// rather than loop forever, per spec §4.2.
func (d *BaseDag[T]) HasCycle() bool {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[Hash]int, len(d.order))
	var visit func(h Hash) bool
	visit = func(h Hash) bool {
		switch state[h] {
		case done:
			return false
		case inStack:
			return true
		}
		state[h] = inStack
		for _, c := range d.children[h] {
			if visit(c) {
				return true
			}
		}
		state[h] = done
		return false
	}
	for _, h := range d.order {
		if state[h] == unvisited && visit(h) {
			return true
		}
	}
	return false
}

// SortAsc topologically sorts set so that every hash appears after every
// one of its in-set parents, breaking ties among nodes with no remaining
// unsatisfied in-set parent using opts.Compare (the set's own order if nil).
// Returns ErrInvalidDag if the BaseDag contains a cycle.
func (d *BaseDag[T]) SortAsc(set hashset.Set, opts SortOptions[T]) ([]Hash, error) {
	if d.HasCycle() {
		return nil, ErrInvalidDag
	}
	hashes := set.ToHashes()
	pos := make(map[Hash]int, len(hashes))
	for i, h := range hashes {
		pos[h] = i
	}
	before := func(a, b Hash) bool {
		if opts.Compare == nil {
			return pos[a] < pos[b]
		}
		return opts.Compare(d.nodes[a], d.nodes[b])
	}

	remaining := make(map[Hash]int, len(hashes))
	for _, h := range hashes {
		n := 0
		for _, p := range d.parents[h] {
			if set.Contains(p) {
				n++
			}
		}
		remaining[h] = n
	}

	var ready []Hash
	for _, h := range hashes {
		if remaining[h] == 0 {
			ready = append(ready, h)
		}
	}

	out := make([]Hash, 0, len(hashes))
	for len(ready) > 0 {
		best := 0
		for i := 1; i < len(ready); i++ {
			if before(ready[i], ready[best]) {
				best = i
			}
		}
		h := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		out = append(out, h)
		for _, c := range d.children[h] {
			if !set.Contains(c) {
				continue
			}
			remaining[c]--
			if remaining[c] == 0 {
				ready = append(ready, c)
			}
		}
	}
	return out, nil
}

// SortDesc is SortAsc reversed.
func (d *BaseDag[T]) SortDesc(set hashset.Set, opts SortOptions[T]) ([]Hash, error) {
	hashes, err := d.SortAsc(set, opts)
	if err != nil {
		return nil, err
	}
	reverse(hashes)
	return hashes, nil
}

func reverse(hs []Hash) {
	for i, j := 0, len(hs)-1; i < j; i, j = i+1, j-1 {
		hs[i], hs[j] = hs[j], hs[i]
	}
}
