package champ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmutableSequencedSetAddLastPreservesInsertionOrder(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals)
	for _, v := range []int{1, 2, 3, 4} {
		s = s.AddLast(v)
	}

	got := s.ToSlice()
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestImmutableSequencedSetAddFirstReversesOrder(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals)
	for _, v := range []int{1, 2, 3, 4} {
		s = s.AddFirst(v)
	}

	got := s.ToSlice()
	assert.Equal(t, []int{4, 3, 2, 1}, got)
}

func TestImmutableSequencedSetMoveToFirstAndLast(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals)
	for _, v := range []int{1, 2, 3} {
		s = s.AddLast(v)
	}
	// 1, 2, 3

	moved := s.MoveToFirst(3)
	assert.Equal(t, []int{3, 1, 2}, moved.ToSlice())

	movedBack := moved.MoveToLast(3)
	assert.Equal(t, []int{1, 2, 3}, movedBack.ToSlice())
}

func TestImmutableSequencedSetAddDoesNotMoveExisting(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2).AddLast(3)
	again := s.Add(2)
	assert.Equal(t, []int{1, 2, 3}, again.ToSlice(), "Add on an already-present element must not change its position")
}

func TestImmutableSequencedSetReverseIterator(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals)
	for _, v := range []int{1, 2, 3} {
		s = s.AddLast(v)
	}

	it := s.ReverseIterator()
	var got []int
	for it.HasNext() {
		v, err := it.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 2, 1}, got)
}

func TestImmutableSequencedSetEqualIsOrderSensitive(t *testing.T) {
	a := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2)
	b := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2)
	c := NewSequencedSet[int](intHash, intEquals).AddLast(2).AddLast(1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "same elements in a different order must not be equal")
}

func TestImmutableSequencedSetRenumbersUnderChurn(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals).AddLast(0)

	for i := 1; i <= 40; i++ {
		s = s.AddFirst(i)
		s = s.Remove(i)
	}

	require.Equal(t, 1, s.Size())
	assert.True(t, s.Contains(0))
	span := int64(s.last) - int64(s.first)
	assert.LessOrEqual(t, span, int64(4*s.Size()),
		"repeated churn at the front must eventually trigger a renumbering rebuild")
	assert.True(t, checkCanonical[sequencedData[int]](s.c.root))
}

func TestImmutableSequencedSetGetFirstGetLast(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2).AddLast(3)

	first, err := s.GetFirst()
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	last, err := s.GetLast()
	require.NoError(t, err)
	assert.Equal(t, 3, last)
}

func TestImmutableSequencedSetGetFirstGetLastOnEmptyIsNoSuchElement(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals)

	_, err := s.GetFirst()
	assert.ErrorIs(t, err, ErrNoSuchElement)

	_, err = s.GetLast()
	assert.ErrorIs(t, err, ErrNoSuchElement)
}

func TestImmutableSequencedSetRemoveFirstRemoveLast(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2).AddLast(3)

	withoutFirst, err := s.RemoveFirst()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, withoutFirst.ToSlice())
	assert.Equal(t, []int{1, 2, 3}, s.ToSlice(), "RemoveFirst must not mutate the receiver")

	withoutLast, err := s.RemoveLast()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, withoutLast.ToSlice())
}

func TestImmutableSequencedSetRemoveFirstRemoveLastOnEmptyIsNoSuchElement(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals)

	_, err := s.RemoveFirst()
	assert.ErrorIs(t, err, ErrNoSuchElement)

	_, err = s.RemoveLast()
	assert.ErrorIs(t, err, ErrNoSuchElement)
}

func TestImmutableSequencedSetRetainAllOnSelfReturnsSameReference(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2)
	again := s.RetainAll(s)
	if again != s {
		t.Errorf("RetainAll(s) should return the identical reference")
	}
}

func TestImmutableSequencedSetAddAllOfEmptyReturnsSameReference(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals).AddLast(1)
	empty := NewSequencedSet[int](intHash, intEquals)
	again := s.AddAll(empty)
	if again != s {
		t.Errorf("AddAll(emptyCollection) should return the identical reference")
	}
}

func TestImmutableSequencedSetRetainAllOfEmptyReturnsFreshEmptySet(t *testing.T) {
	s := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2)
	empty := NewSequencedSet[int](intHash, intEquals)
	result := s.RetainAll(empty)
	assert.True(t, result.IsEmpty())
	assert.False(t, s.IsEmpty(), "RetainAll must not mutate the receiver")
}

func TestImmutableSequencedSetAddAllAppendsInOtherOrder(t *testing.T) {
	a := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2)
	b := NewSequencedSet[int](intHash, intEquals).AddLast(3).AddLast(4)

	union := a.AddAll(b)
	assert.Equal(t, []int{1, 2, 3, 4}, union.ToSlice())
}

func TestImmutableSequencedSetRetainAllPreservesOrder(t *testing.T) {
	a := NewSequencedSet[int](intHash, intEquals).AddLast(1).AddLast(2).AddLast(3)
	b := NewSequencedSet[int](intHash, intEquals).AddLast(3).AddLast(1)

	result := a.RetainAll(b)
	assert.Equal(t, []int{1, 3}, result.ToSlice())
}

func TestMutableSequencedSetGetFirstGetLastRemoveFirstRemoveLast(t *testing.T) {
	mutable := NewSequencedSet[int](intHash, intEquals).ToMutable()
	for _, v := range []int{1, 2, 3} {
		_, err := mutable.AddLast(v)
		require.NoError(t, err)
	}

	first, err := mutable.GetFirst()
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	last, err := mutable.GetLast()
	require.NoError(t, err)
	assert.Equal(t, 3, last)

	removed, err := mutable.RemoveFirst()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, mutable.Contains(1))

	removed, err = mutable.RemoveLast()
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.False(t, mutable.Contains(3))
}

func TestMutableSequencedSetGetFirstGetLastOnEmptyIsNoSuchElement(t *testing.T) {
	mutable := NewSequencedSet[int](intHash, intEquals).ToMutable()

	_, err := mutable.GetFirst()
	assert.ErrorIs(t, err, ErrNoSuchElement)

	_, err = mutable.GetLast()
	assert.ErrorIs(t, err, ErrNoSuchElement)

	_, err = mutable.RemoveFirst()
	assert.ErrorIs(t, err, ErrNoSuchElement)

	_, err = mutable.RemoveLast()
	assert.ErrorIs(t, err, ErrNoSuchElement)
}

func TestMutableSequencedSetMoveOperations(t *testing.T) {
	mutable := NewSequencedSet[int](intHash, intEquals).ToMutable()
	for _, v := range []int{1, 2, 3} {
		_, err := mutable.AddLast(v)
		require.NoError(t, err)
	}

	_, err := mutable.MoveToFirst(3)
	require.NoError(t, err)

	it := mutable.Iterator()
	var got []int
	for it.HasNext() {
		v, err := it.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 1, 2}, got)
}

func TestMutableSequencedSetFreezeInvalidatesHandle(t *testing.T) {
	mutable := NewSequencedSet[int](intHash, intEquals).ToMutable()
	_, err := mutable.AddLast(1)
	require.NoError(t, err)

	frozen := mutable.ToImmutable()
	assert.Equal(t, []int{1}, frozen.ToSlice())

	_, err = mutable.AddLast(2)
	assert.ErrorIs(t, err, ErrUnsupportedMutation)
}
