package hashset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDedupsAndPreservesFirstOccurrence(t *testing.T) {
	s := New("a", "b", "a", "c", "b")
	assert.Equal(t, 3, s.Size())
	assert.Equal(t, []Hash{"a", "b", "c"}, s.ToHashes())
}

func TestContains(t *testing.T) {
	s := New("a", "b")
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("z"))
	assert.False(t, Empty.Contains("a"))
}

func TestUnionPreservesLeftThenNewFromRight(t *testing.T) {
	left := New("a", "b", "c")
	right := New("c", "d", "a", "e")
	got := left.Union(right)
	require.Equal(t, []Hash{"a", "b", "c", "d", "e"}, got.ToHashes())
}

func TestIntersectPreservesLeftOrder(t *testing.T) {
	left := New("a", "b", "c", "d")
	right := New("d", "b")
	got := left.Intersect(right)
	assert.Equal(t, []Hash{"b", "d"}, got.ToHashes())
}

func TestSubtract(t *testing.T) {
	left := New("a", "b", "c")
	right := New("b")
	got := left.Subtract(right)
	assert.Equal(t, []Hash{"a", "c"}, got.ToHashes())
}

func TestFilter(t *testing.T) {
	s := New("a", "bb", "ccc", "dddd")
	got := s.Filter(func(h Hash) bool { return len(h) > 2 })
	assert.Equal(t, []Hash{"ccc", "dddd"}, got.ToHashes())
}

func TestEqualIgnoresOrder(t *testing.T) {
	a := New("x", "y", "z")
	b := New("z", "y", "x")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(New("x", "y")))
}

func TestOperationsOnForeignHashesNoOp(t *testing.T) {
	s := New("a", "b")
	assert.Equal(t, s, s.Subtract(New("z")).Union(s.Intersect(New("a"))))
	assert.False(t, s.Contains("nonexistent"))
}

func TestEmptySetIsUsableZeroValue(t *testing.T) {
	var s Set
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, []Hash{}, s.ToHashes())
	u := s.Union(New("a"))
	assert.Equal(t, []Hash{"a"}, u.ToHashes())
}
