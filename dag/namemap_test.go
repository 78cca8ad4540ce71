package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcomplete/revgraph/hashset"
)

func TestNameMapResolveLowestPriorityWins(t *testing.T) {
	nm := NewNameMap().Update(hashset.Empty, []NameInsert{
		{Name: "main", Hash: "remote-hash", Priority: PriorityRemoteBookmark},
		{Name: "main", Hash: "local-hash", Priority: PriorityBookmark},
	})
	h, ok := nm.Resolve("main")
	require.True(t, ok)
	assert.Equal(t, Hash("local-hash"), h)
}

func TestNameMapResolveTiesBreakOnSmallestHash(t *testing.T) {
	nm := NewNameMap().Update(hashset.Empty, []NameInsert{
		{Name: "x", Hash: "bbbb", Priority: PriorityBookmark},
		{Name: "x", Hash: "aaaa", Priority: PriorityBookmark},
	})
	h, ok := nm.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, Hash("aaaa"), h)
}

func TestNameMapUpdateRemovesAndInsertsInOneTransition(t *testing.T) {
	nm := NewNameMap().Update(hashset.Empty, []NameInsert{
		{Name: "feature", Hash: "old", Priority: PriorityBookmark},
	})
	nm2 := nm.Update(hashset.New(Hash("old")), []NameInsert{
		{Name: "feature", Hash: "new", Priority: PriorityBookmark},
	})
	h, ok := nm2.Resolve("feature")
	require.True(t, ok)
	assert.Equal(t, Hash("new"), h)
	assert.Equal(t, []string{"feature"}, nm2.Names("new"))
	assert.Empty(t, nm2.Names("old"))
}

func TestNameMapRemoveIsMinimal(t *testing.T) {
	nm := NewNameMap().Update(hashset.Empty, []NameInsert{
		{Name: "a", Hash: "h1", Priority: PriorityBookmark},
		{Name: "b", Hash: "h2", Priority: PriorityBookmark},
	})
	nm2 := nm.Update(hashset.New(Hash("h1")), nil)
	_, ok := nm2.Resolve("a")
	assert.False(t, ok)
	h, ok := nm2.Resolve("b")
	require.True(t, ok)
	assert.Equal(t, Hash("h2"), h)
}

func TestNameMapNoOpUpdateReturnsSameValue(t *testing.T) {
	nm := NewNameMap()
	assert.Same(t, nm, nm.Update(hashset.Empty, nil))
}
