package champ

import "fmt"

// ImmutableSequencedMap is a persistent map that additionally tracks
// binding order, the map counterpart of ImmutableSequencedSet. Put
// preserves an existing key's position (only its value moves);
// AddFirst/AddLast/MoveToFirst/MoveToLast relocate a binding to either
// end. Grounded on mapEntry (Types.go) composed with sequencedData
// (Sequence.go), the same composition Map.go builds ImmutableMap from.
type ImmutableSequencedMap[K comparable, V any] struct {
	c     *baseContainer[sequencedData[mapEntry[K, V]]]
	first int32
	last  int32
}

func NewSequencedMap[K comparable, V any](hashFn HashFn[K], equalsFn EqualsFn[K]) *ImmutableSequencedMap[K, V] {
	entryEquals := func(a, b mapEntry[K, V]) bool { return equalsFn(a.key, b.key) }
	entryHash := func(e mapEntry[K, V]) uint32 { return hashFn(e.key) }
	return &ImmutableSequencedMap[K, V]{
		c:     newEmptyContainer[sequencedData[mapEntry[K, V]]](seqHashFn(entryHash), seqEqualsFn(entryEquals)),
		first: 0,
		last:  -1,
	}
}

func NewStringSequencedMap[V any]() *ImmutableSequencedMap[string, V] {
	return NewSequencedMap[string, V](DefaultStringHash, DefaultStringEquals)
}

func (m *ImmutableSequencedMap[K, V]) Size() int     { return m.c.size }
func (m *ImmutableSequencedMap[K, V]) IsEmpty() bool { return m.c.size == 0 }

func (m *ImmutableSequencedMap[K, V]) Get(key K) (V, bool) {
	entry, ok := m.c.find(sequencedData[mapEntry[K, V]]{value: mapEntry[K, V]{key: key}})
	return entry.value.value, ok
}

func (m *ImmutableSequencedMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// seqMapPutReplace keeps an already-bound key's position fixed while
// taking the incoming value - Put never moves a key, only AddFirst/
// AddLast/MoveToFirst/MoveToLast do.
func seqMapPutReplace[K comparable, V any](existing, incoming sequencedData[mapEntry[K, V]]) sequencedData[mapEntry[K, V]] {
	return sequencedData[mapEntry[K, V]]{value: incoming.value, seq: existing.seq}
}

// seqMapMoveReplace relocates an already-bound key to incoming's
// position, taking incoming's value as well - used by AddFirst/AddLast
// (which carry a new value) and MoveToFirst/MoveToLast (which re-wrap
// the existing value before calling this, so it is a no-op on value).
func seqMapMoveReplace[K comparable, V any](_, incoming sequencedData[mapEntry[K, V]]) sequencedData[mapEntry[K, V]] {
	return incoming
}

// Put binds key to value, preserving key's existing position if
// already bound, or appending a new binding at the end.
func (m *ImmutableSequencedMap[K, V]) Put(key K, value V) *ImmutableSequencedMap[K, V] {
	candidate := seqCandidate(seqModeLast, m.first, m.last, m.c.size == 0)
	d := sequencedData[mapEntry[K, V]]{value: mapEntry[K, V]{key: key, value: value}, seq: candidate}
	newRoot, newFirst, newLast, newSize, details := applySeqInsertWith(m.c.root, nil, m.first, m.last, m.c.size, d, seqMapPutReplace[K, V], false, m.c.hashFn, m.c.equalsFn)
	if !details.modified {
		return m
	}
	return &ImmutableSequencedMap[K, V]{
		c:     &baseContainer[sequencedData[mapEntry[K, V]]]{root: newRoot, size: newSize, hashFn: m.c.hashFn, equalsFn: m.c.equalsFn},
		first: newFirst, last: newLast,
	}
}

func (m *ImmutableSequencedMap[K, V]) move(key K, value V, mode seqMode) *ImmutableSequencedMap[K, V] {
	candidate := seqCandidate(mode, m.first, m.last, m.c.size == 0)
	d := sequencedData[mapEntry[K, V]]{value: mapEntry[K, V]{key: key, value: value}, seq: candidate}
	newRoot, newFirst, newLast, newSize, details := applySeqInsertWith(m.c.root, nil, m.first, m.last, m.c.size, d, seqMapMoveReplace[K, V], true, m.c.hashFn, m.c.equalsFn)
	if !details.modified {
		return m
	}
	return &ImmutableSequencedMap[K, V]{
		c:     &baseContainer[sequencedData[mapEntry[K, V]]]{root: newRoot, size: newSize, hashFn: m.c.hashFn, equalsFn: m.c.equalsFn},
		first: newFirst, last: newLast,
	}
}

func (m *ImmutableSequencedMap[K, V]) AddFirst(key K, value V) *ImmutableSequencedMap[K, V] {
	return m.move(key, value, seqModeFirst)
}
func (m *ImmutableSequencedMap[K, V]) AddLast(key K, value V) *ImmutableSequencedMap[K, V] {
	return m.move(key, value, seqModeLast)
}

// MoveToFirst relocates an already-bound key to the front without
// changing its value. A no-op if key is absent.
func (m *ImmutableSequencedMap[K, V]) MoveToFirst(key K) *ImmutableSequencedMap[K, V] {
	v, ok := m.Get(key)
	if !ok {
		return m
	}
	return m.move(key, v, seqModeFirst)
}

func (m *ImmutableSequencedMap[K, V]) MoveToLast(key K) *ImmutableSequencedMap[K, V] {
	v, ok := m.Get(key)
	if !ok {
		return m
	}
	return m.move(key, v, seqModeLast)
}

func (m *ImmutableSequencedMap[K, V]) Remove(key K) *ImmutableSequencedMap[K, V] {
	newRoot, newFirst, newLast, newSize, details := applySeqRemove(
		m.c.root, nil, m.first, m.last, m.c.size, mapEntry[K, V]{key: key}, m.c.hashFn, m.c.equalsFn,
	)
	if !details.modified {
		return m
	}
	return &ImmutableSequencedMap[K, V]{
		c:     &baseContainer[sequencedData[mapEntry[K, V]]]{root: newRoot, size: newSize, hashFn: m.c.hashFn, equalsFn: m.c.equalsFn},
		first: newFirst, last: newLast,
	}
}

// GetFirst returns the earliest-bound key/value pair still present.
// Returns ErrNoSuchElement if the map is empty.
func (m *ImmutableSequencedMap[K, V]) GetFirst() (K, V, error) {
	var zeroK K
	var zeroV V
	if m.IsEmpty() {
		return zeroK, zeroV, fmt.Errorf("GetFirst on empty sequenced map: %w", ErrNoSuchElement)
	}
	k, v, _ := m.Iterator().Next()
	return k, v, nil
}

// GetLast returns the latest-bound key/value pair still present.
// Returns ErrNoSuchElement if the map is empty.
func (m *ImmutableSequencedMap[K, V]) GetLast() (K, V, error) {
	var zeroK K
	var zeroV V
	if m.IsEmpty() {
		return zeroK, zeroV, fmt.Errorf("GetLast on empty sequenced map: %w", ErrNoSuchElement)
	}
	k, v, _ := m.ReverseIterator().Next()
	return k, v, nil
}

// RemoveFirst returns a map without the earliest-bound key. Returns
// ErrNoSuchElement (and the receiver unchanged) if the map is empty.
func (m *ImmutableSequencedMap[K, V]) RemoveFirst() (*ImmutableSequencedMap[K, V], error) {
	k, _, err := m.GetFirst()
	if err != nil {
		return m, err
	}
	return m.Remove(k), nil
}

// RemoveLast returns a map without the latest-bound key. Returns
// ErrNoSuchElement (and the receiver unchanged) if the map is empty.
func (m *ImmutableSequencedMap[K, V]) RemoveLast() (*ImmutableSequencedMap[K, V], error) {
	k, _, err := m.GetLast()
	if err != nil {
		return m, err
	}
	return m.Remove(k), nil
}

// AddAll returns a map with every binding of other merged in on top of
// the receiver's own bindings, appended in other's iteration order
// where the key is new. Returns the receiver itself, unchanged, when
// other contributes nothing new.
func (m *ImmutableSequencedMap[K, V]) AddAll(other *ImmutableSequencedMap[K, V]) *ImmutableSequencedMap[K, V] {
	result := m
	it := other.Iterator()
	for it.HasNext() {
		k, v, _ := it.Next()
		result = result.Put(k, v)
	}
	return result
}

// RemoveAll returns a map without any binding whose key appears in
// keys. Returns the receiver itself, unchanged, when none of those
// keys were bound to begin with.
func (m *ImmutableSequencedMap[K, V]) RemoveAll(keys *ImmutableSet[K]) *ImmutableSequencedMap[K, V] {
	result := m
	it := keys.Iterator()
	for it.HasNext() {
		k, _ := it.Next()
		result = result.Remove(k)
	}
	return result
}

// RetainAll returns a map holding only the bindings whose key appears
// in keys, in the receiver's existing order. Returns the receiver
// itself, unchanged, when every bound key already belongs to keys.
// Returns a fresh empty map when keys is empty, regardless of the
// receiver's contents.
func (m *ImmutableSequencedMap[K, V]) RetainAll(keys *ImmutableSet[K]) *ImmutableSequencedMap[K, V] {
	if keys.IsEmpty() {
		return &ImmutableSequencedMap[K, V]{
			c:     newEmptyContainer[sequencedData[mapEntry[K, V]]](m.c.hashFn, m.c.equalsFn),
			first: 0, last: -1,
		}
	}
	result := m
	it := m.Iterator()
	for it.HasNext() {
		k, _, _ := it.Next()
		if !keys.Contains(k) {
			result = result.Remove(k)
		}
	}
	return result
}

// seqMapIterator adapts a sequencedIterator[mapEntry[K, V]] to yield
// key/value pairs.
type seqMapIterator[K comparable, V any] struct {
	inner sequencedIterator[mapEntry[K, V]]
}

func (it *seqMapIterator[K, V]) HasNext() bool { return it.inner.HasNext() }

func (it *seqMapIterator[K, V]) Next() (K, V, error) {
	e, err := it.inner.Next()
	if err != nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, err
	}
	return e.key, e.value, nil
}

func (m *ImmutableSequencedMap[K, V]) Iterator() *seqMapIterator[K, V] {
	it := newSequencedIterator(collectAll(m.c.root), m.c.size, m.first, m.last, false, failFastGuard{})
	return &seqMapIterator[K, V]{inner: it}
}

func (m *ImmutableSequencedMap[K, V]) ReverseIterator() *seqMapIterator[K, V] {
	it := newSequencedIterator(collectAll(m.c.root), m.c.size, m.first, m.last, true, failFastGuard{})
	return &seqMapIterator[K, V]{inner: it}
}

func (m *ImmutableSequencedMap[K, V]) Keys() []K {
	it := m.Iterator()
	out := make([]K, 0, m.c.size)
	for it.HasNext() {
		k, _, _ := it.Next()
		out = append(out, k)
	}
	return out
}

func (m *ImmutableSequencedMap[K, V]) ToMutable() *MutableSequencedMap[K, V] {
	return &MutableSequencedMap[K, V]{c: m.c.thaw(nil), first: m.first, last: m.last}
}

// MutableSequencedMap is the transient counterpart of
// ImmutableSequencedMap.
type MutableSequencedMap[K comparable, V any] struct {
	c     *baseContainer[sequencedData[mapEntry[K, V]]]
	first int32
	last  int32
}

func (m *MutableSequencedMap[K, V]) Size() int     { return m.c.size }
func (m *MutableSequencedMap[K, V]) IsEmpty() bool { return m.c.size == 0 }

func (m *MutableSequencedMap[K, V]) Get(key K) (V, bool) {
	entry, ok := m.c.find(sequencedData[mapEntry[K, V]]{value: mapEntry[K, V]{key: key}})
	return entry.value.value, ok
}

func (m *MutableSequencedMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *MutableSequencedMap[K, V]) Put(key K, value V) (prior V, hadPrior bool, err error) {
	if err = m.c.ensureMutable(); err != nil {
		return prior, false, err
	}
	candidate := seqCandidate(seqModeLast, m.first, m.last, m.c.size == 0)
	d := sequencedData[mapEntry[K, V]]{value: mapEntry[K, V]{key: key, value: value}, seq: candidate}
	newRoot, newFirst, newLast, newSize, details := applySeqInsertWith(m.c.root, m.c.token, m.first, m.last, m.c.size, d, seqMapPutReplace[K, V], false, m.c.hashFn, m.c.equalsFn)
	m.c.root, m.first, m.last, m.c.size = newRoot, newFirst, newLast, newSize
	if details.modified {
		m.c.modCount++
	}
	if details.replacedOld {
		return details.priorValue.value.value, true, nil
	}
	return prior, false, nil
}

func (m *MutableSequencedMap[K, V]) move(key K, value V, mode seqMode) (bool, error) {
	if err := m.c.ensureMutable(); err != nil {
		return false, err
	}
	candidate := seqCandidate(mode, m.first, m.last, m.c.size == 0)
	d := sequencedData[mapEntry[K, V]]{value: mapEntry[K, V]{key: key, value: value}, seq: candidate}
	newRoot, newFirst, newLast, newSize, details := applySeqInsertWith(m.c.root, m.c.token, m.first, m.last, m.c.size, d, seqMapMoveReplace[K, V], true, m.c.hashFn, m.c.equalsFn)
	m.c.root, m.first, m.last, m.c.size = newRoot, newFirst, newLast, newSize
	if details.modified {
		m.c.modCount++
	}
	return details.modified, nil
}

func (m *MutableSequencedMap[K, V]) AddFirst(key K, value V) (bool, error) {
	return m.move(key, value, seqModeFirst)
}
func (m *MutableSequencedMap[K, V]) AddLast(key K, value V) (bool, error) {
	return m.move(key, value, seqModeLast)
}

func (m *MutableSequencedMap[K, V]) MoveToFirst(key K) (bool, error) {
	v, ok := m.Get(key)
	if !ok {
		return false, nil
	}
	return m.move(key, v, seqModeFirst)
}

func (m *MutableSequencedMap[K, V]) MoveToLast(key K) (bool, error) {
	v, ok := m.Get(key)
	if !ok {
		return false, nil
	}
	return m.move(key, v, seqModeLast)
}

func (m *MutableSequencedMap[K, V]) Remove(key K) (prior V, removed bool, err error) {
	if err = m.c.ensureMutable(); err != nil {
		return prior, false, err
	}
	newRoot, newFirst, newLast, newSize, details := applySeqRemove(
		m.c.root, m.c.token, m.first, m.last, m.c.size, mapEntry[K, V]{key: key}, m.c.hashFn, m.c.equalsFn,
	)
	m.c.root, m.first, m.last, m.c.size = newRoot, newFirst, newLast, newSize
	if details.modified {
		m.c.modCount++
		return details.priorValue.value.value, true, nil
	}
	return prior, false, nil
}

// GetFirst returns the earliest-bound key/value pair still present.
// Returns ErrNoSuchElement if the map is empty.
func (m *MutableSequencedMap[K, V]) GetFirst() (K, V, error) {
	var zeroK K
	var zeroV V
	if m.IsEmpty() {
		return zeroK, zeroV, fmt.Errorf("GetFirst on empty sequenced map: %w", ErrNoSuchElement)
	}
	return m.Iterator().Next()
}

// GetLast returns the latest-bound key/value pair still present.
// Returns ErrNoSuchElement if the map is empty.
func (m *MutableSequencedMap[K, V]) GetLast() (K, V, error) {
	var zeroK K
	var zeroV V
	if m.IsEmpty() {
		return zeroK, zeroV, fmt.Errorf("GetLast on empty sequenced map: %w", ErrNoSuchElement)
	}
	return m.ReverseIterator().Next()
}

// RemoveFirst removes and returns the earliest-bound key/value pair.
// Returns ErrNoSuchElement if the map is empty.
func (m *MutableSequencedMap[K, V]) RemoveFirst() (K, V, error) {
	k, v, err := m.GetFirst()
	if err != nil {
		return k, v, err
	}
	_, _, err = m.Remove(k)
	return k, v, err
}

// RemoveLast removes and returns the latest-bound key/value pair.
// Returns ErrNoSuchElement if the map is empty.
func (m *MutableSequencedMap[K, V]) RemoveLast() (K, V, error) {
	k, v, err := m.GetLast()
	if err != nil {
		return k, v, err
	}
	_, _, err = m.Remove(k)
	return k, v, err
}

func (m *MutableSequencedMap[K, V]) Clear() error {
	if err := m.c.clear(); err != nil {
		return err
	}
	m.first, m.last = 0, -1
	return nil
}

func (m *MutableSequencedMap[K, V]) Iterator() *seqMapIterator[K, V] {
	guard := newFailFastGuard(&m.c.modCount)
	it := newSequencedIterator(collectAll(m.c.root), m.c.size, m.first, m.last, false, guard)
	return &seqMapIterator[K, V]{inner: it}
}

func (m *MutableSequencedMap[K, V]) ReverseIterator() *seqMapIterator[K, V] {
	guard := newFailFastGuard(&m.c.modCount)
	it := newSequencedIterator(collectAll(m.c.root), m.c.size, m.first, m.last, true, guard)
	return &seqMapIterator[K, V]{inner: it}
}

func (m *MutableSequencedMap[K, V]) ToImmutable() *ImmutableSequencedMap[K, V] {
	return &ImmutableSequencedMap[K, V]{c: m.c.freeze(), first: m.first, last: m.last}
}
