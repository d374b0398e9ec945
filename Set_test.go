package champ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmutableSetAddContainsRemove(t *testing.T) {
	empty := NewSet[int](intHash, intEquals)
	require.True(t, empty.IsEmpty())

	withOne := empty.Add(1)
	assert.True(t, withOne.Contains(1))
	assert.False(t, empty.Contains(1), "Add must not mutate the receiver")
	assert.Equal(t, 1, withOne.Size())

	removed := withOne.Remove(1)
	assert.False(t, removed.Contains(1))
	assert.True(t, withOne.Contains(1), "Remove must not mutate the receiver")
}

func TestImmutableSetNoOpReturnsSameReference(t *testing.T) {
	s := NewSet[int](intHash, intEquals).Add(1).Add(2)

	t.Run("re-adding an existing element", func(t *testing.T) {
		again := s.Add(1)
		if again != s {
			t.Errorf("Add of an already-present element should return the identical reference")
		}
	})

	t.Run("removing an absent element", func(t *testing.T) {
		again := s.Remove(99)
		if again != s {
			t.Errorf("Remove of an absent element should return the identical reference")
		}
	})
}

func TestImmutableSetSizeMatchesIterationLength(t *testing.T) {
	s := NewSet[int](intHash, intEquals)
	for i := 0; i < 200; i++ {
		s = s.Add(i)
	}

	count := 0
	it := s.Iterator()
	for it.HasNext() {
		if _, err := it.Next(); err != nil {
			t.Fatalf("unexpected iterator error: %v", err)
		}
		count++
	}
	require.Equal(t, s.Size(), count)
	require.True(t, checkCanonical[int](s.c.root))
	require.Equal(t, s.Size(), countReachable[int](s.c.root))
}

func TestImmutableSetContainsAgreesWithFind(t *testing.T) {
	s := NewSet[int](intHash, intEquals).Add(5).Add(10).Add(15)
	for _, v := range []int{5, 10, 15} {
		_, found := s.c.find(v)
		assert.True(t, found)
		assert.True(t, s.Contains(v))
	}
	_, found := s.c.find(999)
	assert.False(t, found)
	assert.False(t, s.Contains(999))
}

func TestImmutableSetHashCollisionNode(t *testing.T) {
	s := NewSet[int](constantHash, intEquals)
	for _, v := range []int{1, 2, 3, 4} {
		s = s.Add(v)
	}
	require.Equal(t, 4, s.Size())
	for _, v := range []int{1, 2, 3, 4} {
		require.True(t, s.Contains(v))
	}

	require.True(t, containsCollisionNode[int](s.c.root),
		"every element shares a hash, the trie should bottom out in a collision node")

	removed := s.Remove(2)
	assert.False(t, removed.Contains(2))
	assert.True(t, removed.Contains(1))
	assert.True(t, removed.Contains(3))
	assert.True(t, removed.Contains(4))
}

func TestImmutableSetEqualIsOrderIndependent(t *testing.T) {
	a := NewSet[int](intHash, intEquals).Add(1).Add(2).Add(3)
	b := NewSet[int](intHash, intEquals).Add(3).Add(2).Add(1)
	c := NewSet[int](intHash, intEquals).Add(1).Add(2)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestSetMutableImmutableHandoff(t *testing.T) {
	base := NewSet[int](intHash, intEquals).Add(1).Add(2)

	mutable := base.ToMutable()
	added, err := mutable.Add(3)
	require.NoError(t, err)
	require.True(t, added)

	assert.False(t, base.Contains(3), "ToMutable must not retroactively mutate the immutable source")
	assert.True(t, mutable.Contains(3))

	frozen := mutable.ToImmutable()
	assert.True(t, frozen.Contains(1))
	assert.True(t, frozen.Contains(2))
	assert.True(t, frozen.Contains(3))

	_, err = mutable.Add(4)
	assert.ErrorIs(t, err, ErrUnsupportedMutation, "a view must not accept writes after being frozen")
}

func TestMutableSetFailFastIterator(t *testing.T) {
	mutable := NewSet[int](intHash, intEquals).ToMutable()
	_, err := mutable.Add(1)
	require.NoError(t, err)
	_, err = mutable.Add(2)
	require.NoError(t, err)

	it := mutable.Iterator()
	require.True(t, it.HasNext())

	_, err = mutable.Add(3)
	require.NoError(t, err)

	_, err = it.Next()
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestImmutableSetRetainAllOnSelfReturnsSameReference(t *testing.T) {
	s := NewSet[int](intHash, intEquals).Add(1).Add(2).Add(3)
	again := s.RetainAll(s)
	if again != s {
		t.Errorf("RetainAll(s) should return the identical reference")
	}
}

func TestImmutableSetAddAllOfEmptyReturnsSameReference(t *testing.T) {
	s := NewSet[int](intHash, intEquals).Add(1).Add(2)
	empty := NewSet[int](intHash, intEquals)
	again := s.AddAll(empty)
	if again != s {
		t.Errorf("AddAll(emptyCollection) should return the identical reference")
	}
}

func TestImmutableSetRetainAllOfEmptyReturnsFreshEmptySet(t *testing.T) {
	s := NewSet[int](intHash, intEquals).Add(1).Add(2)
	empty := NewSet[int](intHash, intEquals)
	result := s.RetainAll(empty)
	assert.True(t, result.IsEmpty())
	assert.False(t, s.IsEmpty(), "RetainAll must not mutate the receiver")
}

func TestImmutableSetAddAllUnion(t *testing.T) {
	a := NewSet[int](intHash, intEquals).Add(1).Add(2)
	b := NewSet[int](intHash, intEquals).Add(2).Add(3)

	union := a.AddAll(b)
	for _, v := range []int{1, 2, 3} {
		assert.True(t, union.Contains(v))
	}
	assert.False(t, a.Contains(3), "AddAll must not mutate the receiver")
}

func TestImmutableSetRemoveAllDifference(t *testing.T) {
	a := NewSet[int](intHash, intEquals).Add(1).Add(2).Add(3)
	b := NewSet[int](intHash, intEquals).Add(2).Add(3)

	diff := a.RemoveAll(b)
	assert.True(t, diff.Contains(1))
	assert.False(t, diff.Contains(2))
	assert.False(t, diff.Contains(3))
	assert.True(t, a.Contains(2), "RemoveAll must not mutate the receiver")
}

func TestImmutableSetRetainAllIntersection(t *testing.T) {
	a := NewSet[int](intHash, intEquals).Add(1).Add(2).Add(3)
	b := NewSet[int](intHash, intEquals).Add(2).Add(3).Add(4)

	inter := a.RetainAll(b)
	assert.False(t, inter.Contains(1))
	assert.True(t, inter.Contains(2))
	assert.True(t, inter.Contains(3))
	assert.Equal(t, 2, inter.Size())
}

func TestMutableSetClearRecyclesOwnedNodes(t *testing.T) {
	pool := NewNodePool[int](NodePoolOptions{MaxSize: 64})
	base := NewSet[int](intHash, intEquals)
	mutable := base.ToMutableWithPool(pool)

	for i := 0; i < 50; i++ {
		_, err := mutable.Add(i)
		require.NoError(t, err)
	}
	require.Equal(t, 50, mutable.Size())

	require.NoError(t, mutable.Clear())
	assert.Positive(t, pool.size, "Clear should hand the view's owned nodes back to the pool")
	assert.Equal(t, 0, mutable.Size())
	assert.False(t, mutable.Contains(10))
}
