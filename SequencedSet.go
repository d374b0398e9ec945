package champ

import "fmt"

// ImmutableSequencedSet is a persistent set that additionally tracks
// insertion order: AddFirst/AddLast place a new element at either end,
// and MoveToFirst/MoveToLast relocate an already-present one, all
// without disturbing any other element's relative order. Grounded on
// sequencedData/applySeqInsert (Sequence.go) and, for the trie
// operations themselves, the same engine ImmutableSet uses - a
// sequenced collection is an ordinary CHAMP trie over a different
// element type, not a different algorithm.
type ImmutableSequencedSet[T any] struct {
	c     *baseContainer[sequencedData[T]]
	first int32
	last  int32
}

// NewSequencedSet creates an empty ImmutableSequencedSet using the
// given hash/equality pair over the unwrapped element type.
func NewSequencedSet[T any](hashFn HashFn[T], equalsFn EqualsFn[T]) *ImmutableSequencedSet[T] {
	return &ImmutableSequencedSet[T]{
		c:     newEmptyContainer[sequencedData[T]](seqHashFn(hashFn), seqEqualsFn(equalsFn)),
		first: 0,
		last:  -1,
	}
}

func NewStringSequencedSet() *ImmutableSequencedSet[string] {
	return NewSequencedSet[string](DefaultStringHash, DefaultStringEquals)
}

func (s *ImmutableSequencedSet[T]) Size() int     { return s.c.size }
func (s *ImmutableSequencedSet[T]) IsEmpty() bool { return s.c.size == 0 }

func (s *ImmutableSequencedSet[T]) Contains(v T) bool {
	_, ok := s.c.find(sequencedData[T]{value: v})
	return ok
}

func (s *ImmutableSequencedSet[T]) withInsert(v T, mode seqMode) *ImmutableSequencedSet[T] {
	newRoot, newFirst, newLast, newSize, details := applySeqInsert(s.c.root, nil, s.first, s.last, s.c.size, v, mode, s.c.hashFn, s.c.equalsFn)
	if !details.modified {
		return s
	}
	return &ImmutableSequencedSet[T]{
		c:     &baseContainer[sequencedData[T]]{root: newRoot, size: newSize, hashFn: s.c.hashFn, equalsFn: s.c.equalsFn},
		first: newFirst, last: newLast,
	}
}

// Add inserts v at the end if absent; a no-op, returning the receiver
// unchanged, if v is already present (its position is left alone).
func (s *ImmutableSequencedSet[T]) Add(v T) *ImmutableSequencedSet[T] { return s.withInsert(v, seqModeAddOnly) }

// AddFirst inserts v at the front if absent, or moves it to the front
// if already present.
func (s *ImmutableSequencedSet[T]) AddFirst(v T) *ImmutableSequencedSet[T] { return s.withInsert(v, seqModeFirst) }

// AddLast inserts v at the end if absent, or moves it to the end if
// already present.
func (s *ImmutableSequencedSet[T]) AddLast(v T) *ImmutableSequencedSet[T] { return s.withInsert(v, seqModeLast) }

func (s *ImmutableSequencedSet[T]) MoveToFirst(v T) *ImmutableSequencedSet[T] { return s.withInsert(v, seqModeFirst) }
func (s *ImmutableSequencedSet[T]) MoveToLast(v T) *ImmutableSequencedSet[T]  { return s.withInsert(v, seqModeLast) }

func (s *ImmutableSequencedSet[T]) Remove(v T) *ImmutableSequencedSet[T] {
	newRoot, newFirst, newLast, newSize, details := applySeqRemove(s.c.root, nil, s.first, s.last, s.c.size, v, s.c.hashFn, s.c.equalsFn)
	if !details.modified {
		return s
	}
	return &ImmutableSequencedSet[T]{
		c:     &baseContainer[sequencedData[T]]{root: newRoot, size: newSize, hashFn: s.c.hashFn, equalsFn: s.c.equalsFn},
		first: newFirst, last: newLast,
	}
}

// GetFirst returns the earliest-inserted element still present.
// Returns ErrNoSuchElement if the set is empty.
func (s *ImmutableSequencedSet[T]) GetFirst() (T, error) {
	var zero T
	if s.IsEmpty() {
		return zero, fmt.Errorf("GetFirst on empty sequenced set: %w", ErrNoSuchElement)
	}
	v, _ := s.Iterator().Next()
	return v, nil
}

// GetLast returns the latest-inserted element still present. Returns
// ErrNoSuchElement if the set is empty.
func (s *ImmutableSequencedSet[T]) GetLast() (T, error) {
	var zero T
	if s.IsEmpty() {
		return zero, fmt.Errorf("GetLast on empty sequenced set: %w", ErrNoSuchElement)
	}
	v, _ := s.ReverseIterator().Next()
	return v, nil
}

// RemoveFirst returns a set without the earliest-inserted element.
// Returns ErrNoSuchElement (and the receiver unchanged) if the set is
// empty.
func (s *ImmutableSequencedSet[T]) RemoveFirst() (*ImmutableSequencedSet[T], error) {
	v, err := s.GetFirst()
	if err != nil {
		return s, err
	}
	return s.Remove(v), nil
}

// RemoveLast returns a set without the latest-inserted element.
// Returns ErrNoSuchElement (and the receiver unchanged) if the set is
// empty.
func (s *ImmutableSequencedSet[T]) RemoveLast() (*ImmutableSequencedSet[T], error) {
	v, err := s.GetLast()
	if err != nil {
		return s, err
	}
	return s.Remove(v), nil
}

// AddAll returns a set containing the receiver's elements plus every
// element of other, appended in other's iteration order. Returns the
// receiver itself, unchanged, when other contributes nothing new.
func (s *ImmutableSequencedSet[T]) AddAll(other *ImmutableSequencedSet[T]) *ImmutableSequencedSet[T] {
	result := s
	it := other.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		result = result.Add(v)
	}
	return result
}

// RemoveAll returns a set without any element that appears in other.
// Returns the receiver itself, unchanged, when none of other's
// elements were present to begin with.
func (s *ImmutableSequencedSet[T]) RemoveAll(other *ImmutableSequencedSet[T]) *ImmutableSequencedSet[T] {
	result := s
	it := other.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		result = result.Remove(v)
	}
	return result
}

// RetainAll returns a set holding only elements also present in other,
// in the receiver's existing order. Returns the receiver itself,
// unchanged, when every element already belongs to other - retainAll(s)
// included. Returns a fresh empty set when other is empty, regardless
// of the receiver's contents.
func (s *ImmutableSequencedSet[T]) RetainAll(other *ImmutableSequencedSet[T]) *ImmutableSequencedSet[T] {
	if other.IsEmpty() {
		return &ImmutableSequencedSet[T]{
			c:     newEmptyContainer[sequencedData[T]](s.c.hashFn, s.c.equalsFn),
			first: 0, last: -1,
		}
	}
	result := s
	it := s.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		if !other.Contains(v) {
			result = result.Remove(v)
		}
	}
	return result
}

// Iterator yields elements from first-inserted to last-inserted.
func (s *ImmutableSequencedSet[T]) Iterator() sequencedIterator[T] {
	return newSequencedIterator(collectAll(s.c.root), s.c.size, s.first, s.last, false, failFastGuard{})
}

// ReverseIterator yields elements from last-inserted to first-inserted.
func (s *ImmutableSequencedSet[T]) ReverseIterator() sequencedIterator[T] {
	return newSequencedIterator(collectAll(s.c.root), s.c.size, s.first, s.last, true, failFastGuard{})
}

func (s *ImmutableSequencedSet[T]) ToSlice() []T {
	it := s.Iterator()
	out := make([]T, 0, s.c.size)
	for it.HasNext() {
		v, _ := it.Next()
		out = append(out, v)
	}
	return out
}

func (s *ImmutableSequencedSet[T]) ToMutable() *MutableSequencedSet[T] {
	return &MutableSequencedSet[T]{c: s.c.thaw(nil), first: s.first, last: s.last}
}

// Equal reports order-sensitive structural equality: same size, and
// the same elements in the same sequence.
func (s *ImmutableSequencedSet[T]) Equal(other *ImmutableSequencedSet[T]) bool {
	if s.c.size != other.c.size {
		return false
	}
	a, b := s.Iterator(), other.Iterator()
	for a.HasNext() {
		va, _ := a.Next()
		if !b.HasNext() {
			return false
		}
		vb, _ := b.Next()
		if !s.c.equalsFn(sequencedData[T]{value: va}, sequencedData[T]{value: vb}) {
			return false
		}
	}
	return !b.HasNext()
}

// MutableSequencedSet is the transient counterpart of
// ImmutableSequencedSet, following the same ownership-token discipline
// as MutableSet.
type MutableSequencedSet[T any] struct {
	c     *baseContainer[sequencedData[T]]
	first int32
	last  int32
}

func (s *MutableSequencedSet[T]) Size() int     { return s.c.size }
func (s *MutableSequencedSet[T]) IsEmpty() bool { return s.c.size == 0 }

func (s *MutableSequencedSet[T]) Contains(v T) bool {
	_, ok := s.c.find(sequencedData[T]{value: v})
	return ok
}

func (s *MutableSequencedSet[T]) insert(v T, mode seqMode) (bool, error) {
	if err := s.c.ensureMutable(); err != nil {
		return false, err
	}
	newRoot, newFirst, newLast, newSize, details := applySeqInsert(s.c.root, s.c.token, s.first, s.last, s.c.size, v, mode, s.c.hashFn, s.c.equalsFn)
	s.c.root, s.first, s.last, s.c.size = newRoot, newFirst, newLast, newSize
	if details.modified {
		s.c.modCount++
	}
	return details.modified, nil
}

func (s *MutableSequencedSet[T]) Add(v T) (bool, error)        { return s.insert(v, seqModeAddOnly) }
func (s *MutableSequencedSet[T]) AddFirst(v T) (bool, error)   { return s.insert(v, seqModeFirst) }
func (s *MutableSequencedSet[T]) AddLast(v T) (bool, error)    { return s.insert(v, seqModeLast) }
func (s *MutableSequencedSet[T]) MoveToFirst(v T) (bool, error) { return s.insert(v, seqModeFirst) }
func (s *MutableSequencedSet[T]) MoveToLast(v T) (bool, error)  { return s.insert(v, seqModeLast) }

func (s *MutableSequencedSet[T]) Remove(v T) (bool, error) {
	if err := s.c.ensureMutable(); err != nil {
		return false, err
	}
	newRoot, newFirst, newLast, newSize, details := applySeqRemove(s.c.root, s.c.token, s.first, s.last, s.c.size, v, s.c.hashFn, s.c.equalsFn)
	s.c.root, s.first, s.last, s.c.size = newRoot, newFirst, newLast, newSize
	if details.modified {
		s.c.modCount++
	}
	return details.modified, nil
}

// GetFirst returns the earliest-inserted element still present.
// Returns ErrNoSuchElement if the set is empty.
func (s *MutableSequencedSet[T]) GetFirst() (T, error) {
	var zero T
	if s.IsEmpty() {
		return zero, fmt.Errorf("GetFirst on empty sequenced set: %w", ErrNoSuchElement)
	}
	return s.Iterator().Next()
}

// GetLast returns the latest-inserted element still present. Returns
// ErrNoSuchElement if the set is empty.
func (s *MutableSequencedSet[T]) GetLast() (T, error) {
	var zero T
	if s.IsEmpty() {
		return zero, fmt.Errorf("GetLast on empty sequenced set: %w", ErrNoSuchElement)
	}
	return s.ReverseIterator().Next()
}

// RemoveFirst removes and returns the earliest-inserted element.
// Returns ErrNoSuchElement if the set is empty.
func (s *MutableSequencedSet[T]) RemoveFirst() (T, error) {
	v, err := s.GetFirst()
	if err != nil {
		return v, err
	}
	_, err = s.Remove(v)
	return v, err
}

// RemoveLast removes and returns the latest-inserted element. Returns
// ErrNoSuchElement if the set is empty.
func (s *MutableSequencedSet[T]) RemoveLast() (T, error) {
	v, err := s.GetLast()
	if err != nil {
		return v, err
	}
	_, err = s.Remove(v)
	return v, err
}

func (s *MutableSequencedSet[T]) Clear() error {
	if err := s.c.clear(); err != nil {
		return err
	}
	s.first, s.last = 0, -1
	return nil
}

func (s *MutableSequencedSet[T]) Iterator() sequencedIterator[T] {
	guard := newFailFastGuard(&s.c.modCount)
	return newSequencedIterator(collectAll(s.c.root), s.c.size, s.first, s.last, false, guard)
}

func (s *MutableSequencedSet[T]) ReverseIterator() sequencedIterator[T] {
	guard := newFailFastGuard(&s.c.modCount)
	return newSequencedIterator(collectAll(s.c.root), s.c.size, s.first, s.last, true, guard)
}

func (s *MutableSequencedSet[T]) ToImmutable() *ImmutableSequencedSet[T] {
	return &ImmutableSequencedSet[T]{c: s.c.freeze(), first: s.first, last: s.last}
}
