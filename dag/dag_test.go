package dag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcomplete/revgraph/hashset"
)

func must(d *Dag, commits ...CommitInfo) *Dag {
	return d.Add(commits)
}

func baseCommit(hash Hash, parents []Hash, phase Phase, when time.Time) CommitInfo {
	return CommitInfo{Hash: hash, Parents: parents, Phase: phase, Date: when}
}

func TestDagResolveUnambiguousPrefix(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("abc123", nil, Draft, base),
		baseCommit("def456", []Hash{"abc123"}, Draft, base.Add(time.Minute)),
	)
	c := d.Resolve("abc")
	require.NotNil(t, c)
	assert.Equal(t, Hash("abc123"), c.Hash)
}

func TestDagResolveAmbiguousPrefixReturnsNil(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("aaa111", nil, Draft, base),
		baseCommit("aaa222", nil, Draft, base),
	)
	assert.Nil(t, d.Resolve("aaa"))
}

func TestDagResolveNamePriority(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		CommitInfo{Hash: "h1", Phase: Public, RemoteBookmarks: []string{"origin/main"}, Date: base},
		CommitInfo{Hash: "h2", Phase: Draft, Bookmarks: []string{"main"}, Date: base.Add(time.Minute)},
	)
	c := d.Resolve("main")
	require.NotNil(t, c)
	assert.Equal(t, Hash("h2"), c.Hash, "local bookmark outranks remote bookmark of the same name")
}

func TestDagRebaseOrphansDescendantsNotInSource(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("root", nil, Public, base),
		baseCommit("a", []Hash{"root"}, Draft, base.Add(time.Minute)),
		baseCommit("b", []Hash{"a"}, Draft, base.Add(2*time.Minute)),
		baseCommit("dest", []Hash{"root"}, Public, base.Add(3*time.Minute)),
	)
	now := base.Add(time.Hour)
	preview := d.Rebase(hashset.New(Hash("a")), hashRef("dest"), now)

	succHash := Hash(RebaseSuccPrefix + "a")
	succ, ok := preview.Get(succHash)
	require.True(t, ok)
	assert.Equal(t, []Hash{"dest"}, succ.Parents)

	orig, ok := preview.Get("a")
	require.True(t, ok)
	assert.True(t, orig.Obsolete())
	assert.Equal(t, succHash, orig.SuccessorInfo.Hash)

	orphan, ok := preview.Get("b")
	require.True(t, ok)
	assert.Equal(t, []Hash{"a"}, orphan.Parents, "b stays below the predecessor copy of a")
}

func hashRef(h Hash) *Hash { return &h }

func TestDagCleanupRemovesObsoleteCommitOutsideWorkingParentAncestry(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old := CommitInfo{Hash: "old", Phase: Draft, Date: base,
		SuccessorInfo: &SuccessorInfo{Hash: "new", Type: SuccessorAmend}}
	newC := CommitInfo{Hash: "new", Phase: Draft, Date: base.Add(time.Minute), IsDot: true}
	d := must(New(), old, newC)

	after := d.Cleanup(nil)
	assert.False(t, after.Has("old"), "obsolete commit with no working-parent dependency is removed")
	assert.True(t, after.Has("new"))
}

func TestDagCleanupIsIdempotent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old := CommitInfo{Hash: "old", Phase: Draft, Date: base,
		SuccessorInfo: &SuccessorInfo{Hash: "new", Type: SuccessorAmend}}
	newC := CommitInfo{Hash: "new", Phase: Draft, Date: base.Add(time.Minute)}
	d := must(New(), old, newC)

	once := d.Cleanup(nil)
	twice := once.Cleanup(nil)
	assert.Equal(t, once.All(), twice.All())
}

func TestDagTouchIsIdempotentUnderSameTimestamp(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(), baseCommit("a", nil, Draft, base))
	now := base.Add(time.Hour)
	once := d.Touch(hashset.New(Hash("a")), false, now)
	twice := once.Touch(hashset.New(Hash("a")), false, now)
	c1, _ := once.Get("a")
	c2, _ := twice.Get("a")
	assert.True(t, c1.Date.Equal(c2.Date))
}

func TestDagSubsetForRenderingHidesUnnamedDisconnectedPublicCommits(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("pub-unnamed", nil, Public, base),
		CommitInfo{Hash: "draft-head", Parents: nil, Phase: Draft, Date: base.Add(time.Minute)},
	)
	subset := d.SubsetForRendering(nil, false)
	assert.False(t, subset.Contains("pub-unnamed"))
	assert.True(t, subset.Contains("draft-head"))
}

func TestDagSubsetForRenderingKeepsPublicParentOfDraft(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("pub-parent", nil, Public, base),
		baseCommit("draft-child", []Hash{"pub-parent"}, Draft, base.Add(time.Minute)),
	)
	subset := d.SubsetForRendering(nil, false)
	assert.True(t, subset.Contains("pub-parent"))
	assert.True(t, subset.Contains("draft-child"))
}

func TestDagReAddingPresentCommitPreservesSeqNumber(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(), baseCommit("a", nil, Draft, base))
	c, _ := d.Get("a")
	seq, ok := c.SeqNumber()
	require.True(t, ok)

	updated := baseCommit("a", nil, Draft, base.Add(time.Hour))
	d2 := d.Add([]CommitInfo{updated})
	c2, _ := d2.Get("a")
	seq2, ok2 := c2.SeqNumber()
	require.True(t, ok2)
	assert.Equal(t, seq, seq2, "editing a present commit keeps its original seqNumber")
}

func TestDagRemoveThenReAddAssignsFreshSeqNumber(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(), baseCommit("a", nil, Draft, base))
	c, _ := d.Get("a")
	seq, _ := c.SeqNumber()

	d2 := d.Remove(hashset.New(Hash("a")))
	d3 := d2.Add([]CommitInfo{baseCommit("a", nil, Draft, base)})
	c2, _ := d3.Get("a")
	seq2, ok2 := c2.SeqNumber()
	require.True(t, ok2)
	assert.NotEqual(t, seq, seq2, "a commit forgotten by Remove gets treated as new on re-insertion")
}

func TestDagRenderToRowsIsDeterministic(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("root", nil, Public, base),
		baseCommit("a", []Hash{"root"}, Draft, base.Add(time.Minute)),
		baseCommit("b", []Hash{"a"}, Draft, base.Add(2*time.Minute)),
	)
	rows1, err := d.RenderToRows(nil)
	require.NoError(t, err)
	rows2, err := d.RenderToRows(nil)
	require.NoError(t, err)
	assert.Equal(t, rows1, rows2)
}

func TestDagRenderASCIIHasNoTrailingNewline(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(), baseCommit("a", nil, Draft, base))
	out, err := d.RenderASCII(nil)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.NotEqual(t, byte('\n'), out[len(out)-1])
}

func TestDagForceConnectPublicTiesBreakOnLargerHashFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("aaa", nil, Public, base),
		baseCommit("bbb", nil, Public, base),
	)
	connected := d.ForceConnectPublic()

	bigger, ok := connected.Get("bbb")
	require.True(t, ok)
	assert.Empty(t, bigger.Ancestors, "the larger hash is the older synthetic root and gets no synthetic ancestor")

	smaller, ok := connected.Get("aaa")
	require.True(t, ok)
	assert.Equal(t, []Hash{"bbb"}, smaller.Ancestors,
		"source's documented same-date tie-break: the smaller hash is linked below the larger one")
}

func TestDagForceConnectPublicLeavesSingleRootAlone(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(), baseCommit("only", nil, Public, base))
	connected := d.ForceConnectPublic()
	c, ok := connected.Get("only")
	require.True(t, ok)
	assert.Empty(t, c.Ancestors)
}

func TestDagSortDescIsSortAscReversed(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("root", nil, Public, base),
		baseCommit("a", []Hash{"root"}, Draft, base.Add(time.Minute)),
		baseCommit("b", []Hash{"a"}, Draft, base.Add(2*time.Minute)),
	)
	asc, err := d.SortAsc(d.All(), nil)
	require.NoError(t, err)
	desc, err := d.SortDesc(d.All(), nil)
	require.NoError(t, err)
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestDagSortAscIsIdempotentUnderRepeatedSort(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("root", nil, Public, base),
		baseCommit("a", []Hash{"root"}, Draft, base.Add(time.Minute)),
	)
	first, err := d.SortAsc(d.All(), nil)
	require.NoError(t, err)
	second, err := d.SortAsc(d.All(), nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDagAncestorsAreMonotoneUnderSubsetGrowth(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("root", nil, Public, base),
		baseCommit("a", []Hash{"root"}, Draft, base.Add(time.Minute)),
		baseCommit("b", []Hash{"a"}, Draft, base.Add(2*time.Minute)),
	)
	small := d.Ancestors(hashset.New(Hash("a")), nil)
	big := d.Ancestors(hashset.New(Hash("a"), Hash("b")), nil)
	for _, h := range small.ToHashes() {
		assert.True(t, big.Contains(h), "%s missing from ancestors of the larger set", h)
	}
}

func TestDagAddMutationsRecordsPredecessorEdge(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(), baseCommit("a", nil, Draft, base))
	d2 := d.AddMutations([]Mutation{{Old: "a", New: "a-succ"}})
	state := d2.GetDebugState()
	assert.Equal(t, 2, state.MutationNodes)
}

func TestDagReplaceWithPreservesSeqNumberAndAppliesFunc(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(), baseCommit("a", nil, Draft, base))
	before, _ := d.Get("a")
	seq, _ := before.SeqNumber()

	later := base.Add(time.Hour)
	d2 := d.ReplaceWith(hashset.New(Hash("a")), func(c CommitInfo) CommitInfo {
		c.Date = later
		return c
	})
	after, ok := d2.Get("a")
	require.True(t, ok)
	assert.True(t, after.Date.Equal(later))
	seq2, ok2 := after.SeqNumber()
	require.True(t, ok2)
	assert.Equal(t, seq, seq2)
}

func TestDagGetDebugStateReflectsSizes(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old := CommitInfo{Hash: "old", Phase: Draft, Date: base,
		SuccessorInfo: &SuccessorInfo{Hash: "new", Type: SuccessorAmend}}
	newC := CommitInfo{Hash: "new", Phase: Draft, Date: base.Add(time.Minute)}
	d := must(New(), old, newC)

	state := d.GetDebugState()
	assert.Equal(t, 2, state.CommitCount)
	assert.Equal(t, int64(2), state.NextSeq)
	assert.True(t, state.MutationNodes >= 2)
}

// TestDagRenderCanonicalFixtureScenario reproduces spec §8 scenario 6: two
// disconnected public roots "1" and "2", drafts a..e on 1, drafts x..z on
// 2, "." at e. Sort order is [1, a, b, c, d, e, 2, x, y, z]; rendering it
// must be a pure, repeatable function of the Dag value, since no golden
// byte sequence for the ASCII form is specified (see DESIGN.md).
func TestDagRenderCanonicalFixtureScenario(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := must(New(),
		baseCommit("2", nil, Public, base),
		baseCommit("x", []Hash{"2"}, Draft, base.Add(time.Minute)),
		baseCommit("y", []Hash{"x"}, Draft, base.Add(2*time.Minute)),
		baseCommit("z", []Hash{"y"}, Draft, base.Add(3*time.Minute)),
		baseCommit("1", nil, Public, base),
		baseCommit("a", []Hash{"1"}, Draft, base.Add(time.Minute)),
		baseCommit("b", []Hash{"a"}, Draft, base.Add(2*time.Minute)),
		baseCommit("c", []Hash{"b"}, Draft, base.Add(3*time.Minute)),
		baseCommit("d", []Hash{"c"}, Draft, base.Add(4*time.Minute)),
		CommitInfo{Hash: "e", Parents: []Hash{"d"}, Phase: Draft, IsDot: true, Date: base.Add(5 * time.Minute)},
	)

	order, err := d.SortAsc(d.All(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Hash{"1", "a", "b", "c", "d", "e", "2", "x", "y", "z"}, order)

	out1, err := d.RenderASCII(nil)
	require.NoError(t, err)
	out2, err := d.RenderASCII(nil)
	require.NoError(t, err)
	assert.Equal(t, out1, out2, "rendering the same Dag value twice must be byte-for-byte identical")
	require.NotEmpty(t, out1)
}

func TestDagFollowSuccessorsFollowsChainToFinalHead(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old := CommitInfo{Hash: "old", Phase: Draft, Date: base,
		SuccessorInfo: &SuccessorInfo{Hash: "mid", Type: SuccessorAmend}}
	mid := CommitInfo{Hash: "mid", Phase: Draft, Date: base.Add(time.Minute),
		SuccessorInfo: &SuccessorInfo{Hash: "new", Type: SuccessorAmend}}
	newC := CommitInfo{Hash: "new", Phase: Draft, Date: base.Add(2 * time.Minute)}
	d := must(New(), old, mid, newC)

	result := d.FollowSuccessors(hashset.New(Hash("old")))
	assert.True(t, result.Contains("new"))
}
