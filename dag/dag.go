// Package dag implements the in-memory commit-graph core: a BaseDag of
// visible commits superimposed with a MutationDag of predecessor/
// successor edges and a NameMap from human names to hashes, composed
// into the immutable Dag value described by spec §4.5.
package dag

import (
	"strings"
	"time"

	"github.com/bitcomplete/revgraph/hashset"
	"github.com/bitcomplete/revgraph/render"
)

// RebaseSuccPrefix is prepended to a commit's original hash to build the
// synthetic hash of its optimistic-rebase successor.
const RebaseSuccPrefix = "OPTIMISTIC_REBASE_SUCC:"

// Dag is the immutable composition of a BaseDag of CommitInfo, a
// MutationDag, and a NameMap, plus the next seqNumber to hand out. Every
// transformation below returns a new *Dag; existing references to the
// previous value remain valid and keep seeing its data (spec §3, §5).
type Dag struct {
	base    *BaseDag[CommitInfo]
	mut     *MutationDag
	names   *NameMap
	nextSeq int64
	cache   *caches
}

// New returns an empty Dag.
func New() *Dag {
	return &Dag{
		base:    NewBaseDag[CommitInfo](),
		mut:     NewMutationDag(),
		names:   NewNameMap(),
		nextSeq: 0,
		cache:   newCaches(),
	}
}

func (d *Dag) withParts(base *BaseDag[CommitInfo], mut *MutationDag, names *NameMap, nextSeq int64) *Dag {
	return &Dag{base: base, mut: mut, names: names, nextSeq: nextSeq, cache: newCaches()}
}

// --- ingestion -------------------------------------------------------

// Add inserts or replaces commits by hash in one transition, extending
// BaseDag, MutationDag (from each commit's ClosestPredecessors and
// SuccessorInfo), and NameMap together, per spec §3's lifecycle.
func (d *Dag) Add(commits []CommitInfo) *Dag {
	if len(commits) == 0 {
		return d
	}
	nextSeq := d.nextSeq
	entries := make([]Entry[CommitInfo], 0, len(commits))
	removeHashes := make([]Hash, 0, len(commits))
	var inserts []NameInsert
	var mutations []Mutation

	for _, c := range commits {
		if existing, ok := d.base.Get(c.Hash); ok && c.seqNumber == nil {
			c.seqNumber = existing.seqNumber
		}
		if c.seqNumber == nil {
			seq := nextSeq
			nextSeq++
			c = c.withSeqNumber(seq)
		}

		entries = append(entries, Entry[CommitInfo]{Hash: c.Hash, Payload: c, Parents: c.Parents})
		removeHashes = append(removeHashes, c.Hash)

		if c.IsDot {
			inserts = append(inserts, NameInsert{Name: ".", Hash: c.Hash, Priority: PriorityDot})
		}
		for _, b := range c.Bookmarks {
			inserts = append(inserts, NameInsert{Name: b, Hash: c.Hash, Priority: PriorityBookmark})
		}
		for _, rb := range c.RemoteBookmarks {
			inserts = append(inserts, NameInsert{Name: rb, Hash: c.Hash, Priority: PriorityRemoteBookmark})
			if idx := strings.IndexByte(rb, '/'); idx >= 0 && idx+1 < len(rb) {
				inserts = append(inserts, NameInsert{Name: rb[idx+1:], Hash: c.Hash, Priority: PriorityHoistedRemoteTag})
			}
		}

		for _, pred := range c.ClosestPredecessors {
			mutations = append(mutations, Mutation{Old: pred, New: c.Hash})
		}
		if c.SuccessorInfo != nil {
			mutations = append(mutations, Mutation{Old: c.Hash, New: c.SuccessorInfo.Hash})
		}
	}

	base := d.base.Add(entries)
	names := d.names.Update(hashset.New(removeHashes...), inserts)
	mut := d.mut.AddMutations(mutations)
	return d.withParts(base, mut, names, nextSeq)
}

// Remove removes the commits in set from BaseDag and NameMap. MutationDag
// is left untouched so predecessors remain reachable, per spec §3.
func (d *Dag) Remove(set hashset.Set) *Dag {
	if set.Size() == 0 {
		return d
	}
	base := d.base.Remove(set)
	names := d.names.Update(set, nil)
	return d.withParts(base, d.mut, names, d.nextSeq)
}

// AddMutations records predecessor->successor edges independently of any
// BaseDag change.
func (d *Dag) AddMutations(pairs []Mutation) *Dag {
	if len(pairs) == 0 {
		return d
	}
	return d.withParts(d.base, d.mut.AddMutations(pairs), d.names, d.nextSeq)
}

// ReplaceWith applies f to every commit in set and re-inserts the result,
// preserving each commit's seqNumber the way a normal Add replace would.
func (d *Dag) ReplaceWith(set hashset.Set, f func(CommitInfo) CommitInfo) *Dag {
	updated := make([]CommitInfo, 0, set.Size())
	for _, h := range set.ToHashes() {
		c, ok := d.base.Get(h)
		if !ok {
			continue
		}
		updated = append(updated, f(c))
	}
	return d.Add(updated)
}

// --- basic accessors ---------------------------------------------------

// Get returns the commit for h and whether it is present.
func (d *Dag) Get(h Hash) (CommitInfo, bool) {
	return d.base.Get(h)
}

// Has reports whether h is present in the visible graph.
func (d *Dag) Has(h Hash) bool {
	return d.base.Has(h)
}

// MustGet returns the commit for h or ErrNotFound.
func (d *Dag) MustGet(h Hash) (CommitInfo, error) {
	c, ok := d.base.Get(h)
	if !ok {
		return CommitInfo{}, ErrNotFound
	}
	return c, nil
}

// Values returns every commit, in insertion order.
func (d *Dag) Values() []CommitInfo {
	return d.base.Values()
}

func optionalSet(set *hashset.Set, fallback func() hashset.Set) hashset.Set {
	if set != nil {
		return *set
	}
	return fallback()
}

// All returns every hash currently present (memoised).
func (d *Dag) All() hashset.Set {
	return d.cache.all.get("", func() hashset.Set { return d.base.All() })
}

// ParentHashes / ChildHashes / Present / Parents / Children / Range /
// IsAncestor / GCA delegate straight to BaseDag; they are cheap enough
// (and varied enough in their key shape) that the source does not
// memoise them either.

func (d *Dag) ParentHashes(h Hash) []Hash                  { return d.base.ParentHashes(h) }
func (d *Dag) ChildHashes(h Hash) []Hash                   { return d.base.ChildHashes(h) }
func (d *Dag) Present(set hashset.Set) hashset.Set         { return d.base.Present(set) }
func (d *Dag) Parents(set hashset.Set) hashset.Set         { return d.base.Parents(set) }
func (d *Dag) Children(set hashset.Set) hashset.Set        { return d.base.Children(set) }
func (d *Dag) Range(roots, heads hashset.Set) hashset.Set  { return d.base.Range(roots, heads) }
func (d *Dag) IsAncestor(a, b Hash) bool                   { return d.base.IsAncestor(a, b) }
func (d *Dag) GCA(s1, s2 hashset.Set) hashset.Set          { return d.base.GCA(s1, s2) }

// Ancestors returns set and every ancestor reachable from it, optionally
// restricted to within.
func (d *Dag) Ancestors(set hashset.Set, within *hashset.Set) hashset.Set {
	return d.base.Ancestors(set, within)
}

// Descendants returns set and every descendant reachable from it,
// optionally restricted to within.
func (d *Dag) Descendants(set hashset.Set, within *hashset.Set) hashset.Set {
	return d.base.Descendants(set, within)
}

// Roots returns the memoised roots of set.
func (d *Dag) Roots(set hashset.Set) hashset.Set {
	return d.cache.roots.get(setKey(set), func() hashset.Set { return d.base.Roots(set) })
}

// Heads returns the memoised heads of set.
func (d *Dag) Heads(set hashset.Set) hashset.Set {
	return d.cache.heads.get(setKey(set), func() hashset.Set { return d.base.Heads(set) })
}

// Filter returns the hashes in scope (All() if nil) whose commit
// satisfies keep.
func (d *Dag) Filter(keep func(CommitInfo) bool, scope *hashset.Set) hashset.Set {
	return d.base.Filter(keep, scope)
}

// --- filters (spec §4.5) ----------------------------------------------

// Obsolete returns the commits in scope with a non-nil SuccessorInfo.
func (d *Dag) Obsolete(scope *hashset.Set) hashset.Set {
	return d.Filter(func(c CommitInfo) bool { return c.Obsolete() }, scope)
}

// NonObsolete is the complement of Obsolete within scope.
func (d *Dag) NonObsolete(scope *hashset.Set) hashset.Set {
	return d.Filter(func(c CommitInfo) bool { return !c.Obsolete() }, scope)
}

// Draft returns the commits in scope with Phase == Draft.
func (d *Dag) Draft(scope *hashset.Set) hashset.Set {
	return d.Filter(func(c CommitInfo) bool { return c.Phase == Draft }, scope)
}

// PublicCommits returns the commits in scope with Phase == Public. (Named
// PublicCommits, not Public, to avoid shadowing the Public phase
// constant at call sites that import dag with a dot-import.)
func (d *Dag) PublicCommits(scope *hashset.Set) hashset.Set {
	return d.Filter(func(c CommitInfo) bool { return c.Phase == Public }, scope)
}

// --- name resolution (spec §4.5) ---------------------------------------

// Resolve looks up name, trying in order: exact hash, NameMap, then an
// unambiguous hex-prefix match. It returns nil if nothing matches or if
// a hex-prefix match is ambiguous (spec §4.5/§9: the core does not
// distinguish "missing" from "ambiguous" to its caller).
func (d *Dag) Resolve(name string) *CommitInfo {
	if c, ok := d.base.Get(Hash(name)); ok {
		return &c
	}
	if h, ok := d.names.Resolve(name); ok {
		if c, ok := d.base.Get(h); ok {
			return &c
		}
	}
	if looksLikeHexPrefix(name) {
		var match Hash
		matches := 0
		for _, h := range d.base.order {
			if hasPrefix(h, name) {
				matches++
				match = h
				if matches > 1 {
					break
				}
			}
		}
		if matches == 1 {
			c, _ := d.base.Get(match)
			return &c
		}
	}
	return nil
}

// --- rendering selection (spec §4.5) ------------------------------------

// SubsetForRendering chooses which commits to draw from set (All() if
// nil): unnamed disconnected public commits are hidden, and, when
// condenseObsoleteStacks is set, interior obsolete commits are hidden
// too, keeping only the roots/heads of each obsolete run and the parents
// of non-obsolete drafts.
func (d *Dag) SubsetForRendering(set *hashset.Set, condenseObsoleteStacks bool) hashset.Set {
	all := optionalSet(set, d.All)
	key := setKey(all)
	if condenseObsoleteStacks {
		key += "\x01condense"
	}
	return d.cache.subset.get(key, func() hashset.Set {
		unnamedPublic := all.Filter(func(h Hash) bool {
			c, ok := d.base.Get(h)
			if !ok {
				return false
			}
			return c.Phase == Public &&
				len(c.Bookmarks) == 0 &&
				len(c.RemoteBookmarks) == 0 &&
				len(c.StableCommitMetadata) == 0 &&
				!c.IsDot
		})
		draftAll := d.Draft(&all)
		toHidePublic := unnamedPublic.Subtract(d.base.Parents(draftAll))

		var toHide hashset.Set
		if condenseObsoleteStacks {
			obsoleteAll := d.Obsolete(&all)
			nonObsoleteDraft := draftAll.Subtract(obsoleteAll)
			toKeep := d.base.Parents(nonObsoleteDraft).
				Union(d.base.Roots(obsoleteAll)).
				Union(d.base.Heads(obsoleteAll))
			toHide = obsoleteAll.Subtract(toKeep).Union(toHidePublic)
		} else {
			toHide = toHidePublic
		}
		return all.Subtract(toHide)
	})
}

// --- sorting (spec §4.5) -------------------------------------------------

// DefaultCompare implements the spec §4.5 total order: draft before
// public, then newer insertion first, then date ascending, then larger
// hash first.
func DefaultCompare(a, b CommitInfo) bool {
	if a.Phase != b.Phase {
		return a.Phase == Draft
	}
	aSeq, aOK := a.SeqNumber()
	bSeq, bOK := b.SeqNumber()
	if aOK && bOK && aSeq != bSeq {
		return aSeq > bSeq
	}
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.Hash != b.Hash {
		return a.Hash > b.Hash
	}
	return false
}

// SortAsc topologically sorts set, breaking ties among ready commits with
// opts.Compare (DefaultCompare if nil), and returns ErrInvalidDag if the
// graph contains a cycle. The default-compare path is memoised.
func (d *Dag) SortAsc(set hashset.Set, opts *SortOptions[CommitInfo]) ([]Hash, error) {
	if opts == nil || opts.Compare == nil {
		key := setKey(set)
		if hashes, ok := d.cache.sortAsc.lookup(key); ok {
			return hashes, nil
		}
		hashes, err := d.base.SortAsc(set, SortOptions[CommitInfo]{Compare: DefaultCompare})
		if err != nil {
			return nil, err
		}
		d.cache.sortAsc.store(key, hashes)
		return hashes, nil
	}
	return d.base.SortAsc(set, *opts)
}

// SortDesc is SortAsc reversed.
func (d *Dag) SortDesc(set hashset.Set, opts *SortOptions[CommitInfo]) ([]Hash, error) {
	hashes, err := d.SortAsc(set, opts)
	if err != nil {
		return nil, err
	}
	reversed := make([]Hash, len(hashes))
	for i, h := range hashes {
		reversed[len(hashes)-1-i] = h
	}
	return reversed, nil
}

// --- preview operations (spec §4.5) -------------------------------------

// Touch bumps Date to now on set (and its descendants, if requested).
// now is taken as an explicit parameter rather than read from the wall
// clock so the operation stays a pure function of its inputs (see
// DESIGN.md's resolution of this point).
func (d *Dag) Touch(set hashset.Set, includeDescendants bool, now time.Time) *Dag {
	target := set
	if includeDescendants {
		target = d.base.Descendants(set, nil)
	}
	return d.ReplaceWith(target, func(c CommitInfo) CommitInfo {
		c.Date = now
		return c
	})
}

// Cleanup removes obsolete commits with no non-obsolete descendant,
// never touching ancestors of the working parent. If startHeads is
// non-nil, only obsolete heads within it are considered.
func (d *Dag) Cleanup(startHeads *hashset.Set) *Dag {
	obsoleteAll := d.Obsolete(nil)
	var ancestorsOfDot hashset.Set
	if dot := d.Resolve("."); dot != nil {
		ancestorsOfDot = d.base.Ancestors(hashset.New(dot.Hash), nil)
	}
	obsoleteScope := obsoleteAll.Subtract(ancestorsOfDot)

	headsInScope := d.base.Heads(d.Draft(nil)).Intersect(obsoleteScope)
	if startHeads != nil {
		headsInScope = headsInScope.Intersect(*startHeads)
	}
	toRemove := d.base.Ancestors(headsInScope, &obsoleteScope)
	return d.Remove(toRemove)
}

// Rebase computes a preview of `rebase -r srcSet -d dest`: a new
// "optimistic" commit per source commit, reparented under dest, plus the
// retained predecessor copies (marked obsolete) so any commit orphaned
// below the moved set can still be drawn. now supplies the preview
// commits' Date, for the same purity reason as Touch.
func (d *Dag) Rebase(srcSet hashset.Set, dest *Hash, now time.Time) *Dag {
	if dest == nil {
		return d
	}
	alreadyRebased := d.base.Descendants(hashset.New(*dest), nil).Intersect(srcSet)
	src := d.Draft(&srcSet).Subtract(alreadyRebased)
	if src.Size() == 0 {
		return d
	}
	srcRoots := d.base.Roots(src)
	draftAll := d.Draft(nil)
	orphaned := d.base.Range(src, draftAll).Subtract(src)
	duplicated := d.base.Ancestors(orphaned, nil).Intersect(src)

	succHash := func(h Hash) Hash { return Hash(RebaseSuccPrefix + string(h)) }

	newParentsFor := func(h Hash) []Hash {
		parents := d.base.ParentHashes(h)
		inSrc := hashset.New(parents...).Intersect(src)
		var chosen []Hash
		switch {
		case inSrc.Size() > 0:
			chosen = inSrc.ToHashes()
		default:
			ancestorHeads := d.base.Heads(d.base.Ancestors(hashset.New(parents...), nil).Intersect(src))
			if ancestorHeads.Size() > 0 {
				chosen = ancestorHeads.ToHashes()
			} else {
				chosen = []Hash{*dest}
			}
		}
		out := make([]Hash, len(chosen))
		for i, p := range chosen {
			if duplicated.Contains(p) {
				out[i] = succHash(p)
			} else {
				out[i] = p
			}
		}
		return out
	}

	var updates []CommitInfo
	for _, h := range src.ToHashes() {
		orig, ok := d.base.Get(h)
		if !ok {
			continue
		}
		sh := succHash(h)

		predecessorCopy := orig
		predecessorCopy.SuccessorInfo = &SuccessorInfo{Hash: sh, Type: SuccessorRebase}
		updates = append(updates, predecessorCopy)

		previewType := PreviewRebaseOptimisticDescendant
		if srcRoots.Contains(h) {
			previewType = PreviewRebaseOptimisticRoot
		}
		successorCopy := orig
		successorCopy.Hash = sh
		successorCopy.seqNumber = nil
		successorCopy.Date = now
		successorCopy.Parents = newParentsFor(h)
		successorCopy.PreviewType = previewType
		successorCopy.ClosestPredecessors = []Hash{h}
		successorCopy.SuccessorInfo = nil
		updates = append(updates, successorCopy)
	}

	next := d.Add(updates)
	startHeads := next.base.Parents(srcRoots)
	return next.Cleanup(&startHeads)
}

// FollowSuccessors maps each commit in set to its final successor in the
// MutationDag that is still present in the visible graph, per spec §4.5.
// That successor may itself be obsolete if its own successor is absent.
func (d *Dag) FollowSuccessors(set hashset.Set) hashset.Set {
	out := make([]Hash, 0, set.Size())
	for _, h := range set.ToHashes() {
		reachable := d.mut.Descendants(hashset.New(h)).Subtract(hashset.New(h))
		inBase := reachable.Filter(d.base.Has)
		if inBase.Size() == 0 {
			out = append(out, h)
			continue
		}
		headsInBase := d.mut.Heads(inBase)
		if headsInBase.Size() == 1 {
			out = append(out, headsInBase.ToHashes()[0])
			continue
		}
		if set.Size() == 1 {
			stackTop := d.base.Heads(d.base.Ancestors(headsInBase, nil))
			if stackTop.Size() > 0 {
				out = append(out, stackTop.ToHashes()[0])
				continue
			}
		}
		out = append(out, h)
	}
	return hashset.New(out...)
}

// ForceConnectPublic sorts disconnected public roots by date and links
// each to the previous one with a synthetic (dashed) ancestor edge, per
// spec §4.5/§9. Reproduces the source's documented hash tie-break for
// same-date roots rather than inventing a different one.
func (d *Dag) ForceConnectPublic() *Dag {
	publicAll := d.PublicCommits(nil)
	roots := d.base.Roots(publicAll)
	sorted, err := d.base.SortAsc(roots, SortOptions[CommitInfo]{
		Compare: func(a, b CommitInfo) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return a.Hash > b.Hash
		},
	})
	if err != nil || len(sorted) < 2 {
		return d
	}
	updates := make([]CommitInfo, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		older, newerHash := sorted[i-1], sorted[i]
		newer, ok := d.base.Get(newerHash)
		if !ok {
			continue
		}
		newer.Parents = appendUnique(newer.Parents, older)
		newer.Ancestors = []Hash{older}
		updates = append(updates, newer)
	}
	return d.Add(updates)
}

// --- rendering (spec §4.5, §4.6, §4.7) -----------------------------------

type renderItem struct {
	Info  CommitInfo
	Edges []render.Edge
}

func containsHash(hs []Hash, h Hash) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}

func (d *Dag) classifyParents(c CommitInfo, renderSet hashset.Set) []render.Edge {
	var direct, indirect, anonymous []Hash
	for _, p := range c.Parents {
		switch {
		case renderSet.Contains(p):
			direct = append(direct, p)
		case d.base.Has(p):
			indirect = append(indirect, p)
		default:
			anonymous = append(anonymous, p)
		}
	}

	var edges []render.Edge
	directSet := hashset.New(direct...)
	for _, p := range direct {
		typ := render.Parent
		if containsHash(c.Ancestors, p) {
			typ = render.Ancestor
		}
		edges = append(edges, render.Edge{Target: p, Type: typ})
	}
	if len(indirect) > 0 {
		anc := d.base.Ancestors(hashset.New(indirect...), nil)
		for _, h := range d.base.Heads(anc.Intersect(renderSet)).ToHashes() {
			if directSet.Contains(h) {
				continue
			}
			edges = append(edges, render.Edge{Target: h, Type: render.Ancestor})
		}
	}
	if len(anonymous) > 0 {
		anyAsserted := false
		for _, p := range anonymous {
			if containsHash(c.Ancestors, p) {
				anyAsserted = true
			}
		}
		if !anyAsserted {
			edges = append(edges, render.Edge{Type: render.Anonymous})
		}
	}
	if len(edges) == 0 && len(c.Parents) > 0 {
		edges = append(edges, render.Edge{Type: render.Anonymous})
	}
	return edges
}

// dagWalkerForRendering sorts set ascending and reverses it, pairing each
// commit with its classified parent edges, per spec §4.5.
func (d *Dag) dagWalkerForRendering(set hashset.Set) ([]renderItem, error) {
	sorted, err := d.SortAsc(set, nil)
	if err != nil {
		return nil, err
	}
	items := make([]renderItem, len(sorted))
	for i := 0; i < len(sorted); i++ {
		h := sorted[len(sorted)-1-i]
		c, _ := d.base.Get(h)
		items[i] = renderItem{Info: c, Edges: d.classifyParents(c, set)}
	}
	return items, nil
}

// RenderToRows renders set (All() if nil) into graph rows, memoised by
// set identity.
func (d *Dag) RenderToRows(set *hashset.Set) ([]render.GraphRow, error) {
	renderSet := optionalSet(set, d.All)
	key := setKey(renderSet)
	if rows, ok := d.cache.renderRows.lookup(key); ok {
		return rows, nil
	}
	items, err := d.dagWalkerForRendering(renderSet)
	if err != nil {
		return nil, err
	}
	r := render.NewRenderer()
	reserved := false
	for _, it := range items {
		if !reserved && it.Info.Phase == Public {
			r.Reserve(it.Info.Hash)
			reserved = true
		}
	}
	rows := make([]render.GraphRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, r.NextRow(it.Info.Hash, it.Edges, it.Info.IsDot))
	}
	d.cache.renderRows.store(key, rows)
	return rows, nil
}

func glyphFor(c CommitInfo) render.Glyph {
	switch {
	case c.IsDot:
		return render.GlyphDot
	case c.Obsolete():
		return render.GlyphObsolete
	default:
		return render.GlyphPlain
	}
}

// RenderASCII renders set (All() if nil) to the stable ASCII debug
// format described in spec §4.7: no trailing newline, deterministic.
func (d *Dag) RenderASCII(set *hashset.Set) (string, error) {
	renderSet := optionalSet(set, d.All)
	items, err := d.dagWalkerForRendering(renderSet)
	if err != nil {
		return "", err
	}
	tr := render.NewTextRenderer()
	reserved := false
	for _, it := range items {
		if !reserved && it.Info.Phase == Public {
			tr.Reserve(it.Info.Hash)
			reserved = true
		}
	}
	for _, it := range items {
		tr.NextRow(it.Info.Hash, it.Edges, glyphFor(it.Info), it.Info.IsDot)
	}
	return tr.String(), nil
}

// RenderASCIIDebug renders set (All() if nil) the same way RenderASCII
// does, but appends a relative-time annotation to each row via
// TextRenderer.DebugRow. Unlike RenderASCII its output is not byte-stable
// across runs (the annotation text depends on wall-clock time), so it is
// for --verbose/interactive use only, never for golden comparisons.
func (d *Dag) RenderASCIIDebug(set *hashset.Set) (string, error) {
	renderSet := optionalSet(set, d.All)
	items, err := d.dagWalkerForRendering(renderSet)
	if err != nil {
		return "", err
	}
	tr := render.NewTextRenderer()
	reserved := false
	for _, it := range items {
		if !reserved && it.Info.Phase == Public {
			tr.Reserve(it.Info.Hash)
			reserved = true
		}
	}
	for _, it := range items {
		tr.DebugRow(it.Info.Hash, it.Edges, glyphFor(it.Info), it.Info.IsDot, it.Info.Date)
	}
	return tr.String(), nil
}

// DebugState is a snapshot of internal Dag sizes, for getDebugState
// (spec §6).
type DebugState struct {
	CommitCount   int
	MutationNodes int
	MutationRoots int
	NameCount     int
	NextSeq       int64
}

// GetDebugState returns a snapshot of the Dag's internal sizes.
func (d *Dag) GetDebugState() DebugState {
	names := 0
	for range d.names.byName {
		names++
	}
	mutAll := d.mut.graph.All()
	return DebugState{
		CommitCount:   len(d.base.order),
		MutationNodes: mutAll.Size(),
		MutationRoots: d.mut.graph.Roots(mutAll).Size(),
		NameCount:     names,
		NextSeq:       d.nextSeq,
	}
}
