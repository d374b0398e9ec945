package champ

// ImmutableSet is a persistent hash set: every mutating method returns
// a new ImmutableSet, sharing whatever structure the update didn't
// touch with the receiver. Grounded on the teacher's Mari (the
// top-level handle wrapping a MetaData/root pointer pair), narrowed to
// wrap a single baseContainer[T] instead of a disk-backed root offset.
type ImmutableSet[T any] struct {
	c *baseContainer[T]
}

// NewSet creates an empty ImmutableSet using the given hash/equality
// pair. Use NewStringSet for string elements with Hash.go's default
// functions already wired in.
func NewSet[T any](hashFn HashFn[T], equalsFn EqualsFn[T]) *ImmutableSet[T] {
	return &ImmutableSet[T]{c: newEmptyContainer[T](hashFn, equalsFn)}
}

// NewStringSet creates an empty ImmutableSet[string] using the default
// xxhash-backed hash/equality pair.
func NewStringSet() *ImmutableSet[string] {
	return NewSet[string](DefaultStringHash, DefaultStringEquals)
}

func (s *ImmutableSet[T]) Size() int      { return s.c.size }
func (s *ImmutableSet[T]) IsEmpty() bool  { return s.c.size == 0 }
func (s *ImmutableSet[T]) Contains(v T) bool {
	_, ok := s.c.find(v)
	return ok
}

// Add returns a set containing v in addition to the receiver's
// elements. Returns the receiver itself, unchanged, when v was already
// present.
func (s *ImmutableSet[T]) Add(v T) *ImmutableSet[T] {
	newC, _ := s.c.with(v, keepOld[T])
	if newC == s.c {
		return s
	}
	return &ImmutableSet[T]{c: newC}
}

// Remove returns a set without v. Returns the receiver itself,
// unchanged, when v was absent.
func (s *ImmutableSet[T]) Remove(v T) *ImmutableSet[T] {
	newC, _ := s.c.without(v)
	if newC == s.c {
		return s
	}
	return &ImmutableSet[T]{c: newC}
}

// Iterator walks the set's elements in arbitrary (trie) order.
func (s *ImmutableSet[T]) Iterator() *trieIterator[T] {
	return newTrieIterator[T](s.c.root, failFastGuard{})
}

// ToSlice materializes every element of the set.
func (s *ImmutableSet[T]) ToSlice() []T {
	return collectAll(s.c.root)
}

// ToMutable hands the set's structure off to a new MutableSet in O(1);
// the receiver remains valid and untouched by subsequent writes
// through the returned handle.
func (s *ImmutableSet[T]) ToMutable() *MutableSet[T] {
	return &MutableSet[T]{c: s.c.thaw(nil)}
}

// ToMutableWithPool is ToMutable, with pool attached to the new
// mutable view: Clear hands the nodes that view exclusively owns back
// to pool. New nodes are not drawn from pool; the engine allocates
// them directly.
func (s *ImmutableSet[T]) ToMutableWithPool(pool *NodePool[T]) *MutableSet[T] {
	return &MutableSet[T]{c: s.c.thaw(pool)}
}

// AddAll returns a set containing the receiver's elements plus every
// element of other. Returns the receiver itself, unchanged, when other
// contributes nothing new - including the addAll(this) case, since
// every element other offers is then already present.
func (s *ImmutableSet[T]) AddAll(other *ImmutableSet[T]) *ImmutableSet[T] {
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
func (s *ImmutableSet[T]) RemoveAll(other *ImmutableSet[T]) *ImmutableSet[T] {
	result := s
	it := other.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		result = result.Remove(v)
	}
	return result
}

// RetainAll returns a set holding only elements also present in other.
// Returns the receiver itself, unchanged, when every element already
// belongs to other - retainAll(s) included. Returns a fresh empty set
// when other is empty, regardless of the receiver's contents.
func (s *ImmutableSet[T]) RetainAll(other *ImmutableSet[T]) *ImmutableSet[T] {
	if other.IsEmpty() {
		return &ImmutableSet[T]{c: newEmptyContainer[T](s.c.hashFn, s.c.equalsFn)}
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

// Equal reports structural equality: same size, same elements,
// irrespective of trie layout or insertion order.
func (s *ImmutableSet[T]) Equal(other *ImmutableSet[T]) bool {
	if s.c.size != other.c.size {
		return false
	}
	it := s.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// MutableSet is a transient hash set: writes through a single
// exclusive ownership token mutate shared trie nodes in place instead
// of copying, and only copy when a node is still shared with some
// published immutable snapshot. Grounded on the teacher's MariTx
// (UpdateTx's write-path handle).
type MutableSet[T any] struct {
	c *baseContainer[T]
}

func (s *MutableSet[T]) Size() int     { return s.c.size }
func (s *MutableSet[T]) IsEmpty() bool { return s.c.size == 0 }
func (s *MutableSet[T]) Contains(v T) bool {
	_, ok := s.c.find(v)
	return ok
}

// Add inserts v, reporting whether it was newly added (false when v
// was already present). Returns ErrUnsupportedMutation once this view
// has been frozen via ToImmutable.
func (s *MutableSet[T]) Add(v T) (bool, error) {
	details, err := s.c.mutate(v, keepOld[T])
	if err != nil {
		return false, err
	}
	return details.modified, nil
}

// Remove deletes v, reporting whether it was present.
func (s *MutableSet[T]) Remove(v T) (bool, error) {
	details, err := s.c.mutateRemove(v)
	if err != nil {
		return false, err
	}
	return details.modified, nil
}

// Clear empties the set, recycling any exclusively owned node back to
// this view's NodePool, if one was configured.
func (s *MutableSet[T]) Clear() error {
	return s.c.clear()
}

// Iterator walks the set's current elements in arbitrary order,
// failing fast with ErrConcurrentModification if the set is mutated
// after the iterator is created.
func (s *MutableSet[T]) Iterator() *trieIterator[T] {
	return newTrieIterator[T](s.c.root, newFailFastGuard(&s.c.modCount))
}

func (s *MutableSet[T]) ToSlice() []T {
	return collectAll(s.c.root)
}

// ToImmutable freezes this view into a persistent snapshot in O(1)
// and invalidates the view: further calls through it return
// ErrUnsupportedMutation.
func (s *MutableSet[T]) ToImmutable() *ImmutableSet[T] {
	return &ImmutableSet[T]{c: s.c.freeze()}
}
