package champ

// ImmutableMap is a persistent hash map, stored as a trie of
// mapEntry[K, V] keyed and hashed on K alone. Grounded the same way
// ImmutableSet is, with the key/value split handled entirely by
// mapEntry (Types.go) rather than by any change to the engine.
type ImmutableMap[K comparable, V any] struct {
	c *baseContainer[mapEntry[K, V]]
}

// NewMap creates an empty ImmutableMap whose keys hash/compare via the
// given functions.
func NewMap[K comparable, V any](hashFn HashFn[K], equalsFn EqualsFn[K]) *ImmutableMap[K, V] {
	entryHash := func(e mapEntry[K, V]) uint32 { return hashFn(e.key) }
	entryEquals := func(a, b mapEntry[K, V]) bool { return equalsFn(a.key, b.key) }
	return &ImmutableMap[K, V]{c: newEmptyContainer[mapEntry[K, V]](entryHash, entryEquals)}
}

// NewStringMap creates an empty ImmutableMap[string, V] using the
// default xxhash-backed hash/equality pair.
func NewStringMap[V any]() *ImmutableMap[string, V] {
	return NewMap[string, V](DefaultStringHash, DefaultStringEquals)
}

func (m *ImmutableMap[K, V]) Size() int     { return m.c.size }
func (m *ImmutableMap[K, V]) IsEmpty() bool { return m.c.size == 0 }

// Get returns the value stored for key, and whether key was present.
func (m *ImmutableMap[K, V]) Get(key K) (V, bool) {
	entry, ok := m.c.find(mapEntry[K, V]{key: key})
	return entry.value, ok
}

func (m *ImmutableMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)
	return ok
}

func mapTakeNew[K comparable, V any](_, newEntry mapEntry[K, V]) mapEntry[K, V] { return newEntry }

// Put returns a map with key bound to value, replacing any prior
// binding. Returns the receiver itself, unchanged, only in the
// impossible case where the same key/value pair was already present
// under an equality that also compares values - mapEntry equality
// compares keys only, so Put always either inserts or replaces.
func (m *ImmutableMap[K, V]) Put(key K, value V) *ImmutableMap[K, V] {
	newC, _ := m.c.with(mapEntry[K, V]{key: key, value: value}, mapTakeNew[K, V])
	if newC == m.c {
		return m
	}
	return &ImmutableMap[K, V]{c: newC}
}

// Remove returns a map without key. Returns the receiver itself,
// unchanged, when key was absent.
func (m *ImmutableMap[K, V]) Remove(key K) *ImmutableMap[K, V] {
	newC, _ := m.c.without(mapEntry[K, V]{key: key})
	if newC == m.c {
		return m
	}
	return &ImmutableMap[K, V]{c: newC}
}

// mapIterator adapts a trieIterator[mapEntry[K, V]] to yield key/value
// pairs rather than the raw entry struct.
type mapIterator[K comparable, V any] struct {
	inner *trieIterator[mapEntry[K, V]]
}

func (it *mapIterator[K, V]) HasNext() bool { return it.inner.HasNext() }

func (it *mapIterator[K, V]) Next() (K, V, error) {
	e, err := it.inner.Next()
	if err != nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, err
	}
	return e.key, e.value, nil
}

func (m *ImmutableMap[K, V]) Iterator() *mapIterator[K, V] {
	return &mapIterator[K, V]{inner: newTrieIterator[mapEntry[K, V]](m.c.root, failFastGuard{})}
}

// Keys materializes every key currently bound in the map, in arbitrary
// order.
func (m *ImmutableMap[K, V]) Keys() []K {
	entries := collectAll(m.c.root)
	out := make([]K, len(entries))
	for i, e := range entries {
		out[i] = e.key
	}
	return out
}

func (m *ImmutableMap[K, V]) ToMutable() *MutableMap[K, V] {
	return &MutableMap[K, V]{c: m.c.thaw(nil)}
}

func (m *ImmutableMap[K, V]) ToMutableWithPool(pool *NodePool[mapEntry[K, V]]) *MutableMap[K, V] {
	return &MutableMap[K, V]{c: m.c.thaw(pool)}
}

// AddAll returns a map with every binding of other merged in on top of
// the receiver's own bindings (other's value wins on a shared key).
// Returns the receiver itself, unchanged, when other contributes
// nothing new - addAll(this) included.
func (m *ImmutableMap[K, V]) AddAll(other *ImmutableMap[K, V]) *ImmutableMap[K, V] {
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
func (m *ImmutableMap[K, V]) RemoveAll(keys *ImmutableSet[K]) *ImmutableMap[K, V] {
	result := m
	it := keys.Iterator()
	for it.HasNext() {
		k, _ := it.Next()
		result = result.Remove(k)
	}
	return result
}

// RetainAll returns a map holding only the bindings whose key appears
// in keys. Returns the receiver itself, unchanged, when every bound
// key already belongs to keys. Returns a fresh empty map when keys is
// empty, regardless of the receiver's contents.
func (m *ImmutableMap[K, V]) RetainAll(keys *ImmutableSet[K]) *ImmutableMap[K, V] {
	if keys.IsEmpty() {
		return &ImmutableMap[K, V]{c: newEmptyContainer[mapEntry[K, V]](m.c.hashFn, m.c.equalsFn)}
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

// Equal reports structural equality: same size, same key/value
// bindings, irrespective of trie layout or insertion order. V must be
// comparable via the supplied valueEquals, since V itself may not
// satisfy Go's comparable constraint (e.g. a slice-valued map).
func (m *ImmutableMap[K, V]) Equal(other *ImmutableMap[K, V], valueEquals func(a, b V) bool) bool {
	if m.c.size != other.c.size {
		return false
	}
	it := m.Iterator()
	for it.HasNext() {
		k, v, _ := it.Next()
		ov, ok := other.Get(k)
		if !ok || !valueEquals(v, ov) {
			return false
		}
	}
	return true
}

// MutableMap is the transient counterpart of ImmutableMap, following
// the same ownership-token discipline as MutableSet.
type MutableMap[K comparable, V any] struct {
	c *baseContainer[mapEntry[K, V]]
}

func (m *MutableMap[K, V]) Size() int     { return m.c.size }
func (m *MutableMap[K, V]) IsEmpty() bool { return m.c.size == 0 }

func (m *MutableMap[K, V]) Get(key K) (V, bool) {
	entry, ok := m.c.find(mapEntry[K, V]{key: key})
	return entry.value, ok
}

func (m *MutableMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Put binds key to value, reporting the previously bound value (if
// any).
func (m *MutableMap[K, V]) Put(key K, value V) (prior V, hadPrior bool, err error) {
	details, err := m.c.mutate(mapEntry[K, V]{key: key, value: value}, mapTakeNew[K, V])
	if err != nil {
		return prior, false, err
	}
	if details.replacedOld {
		return details.priorValue.value, true, nil
	}
	return prior, false, nil
}

func (m *MutableMap[K, V]) Remove(key K) (prior V, removed bool, err error) {
	details, err := m.c.mutateRemove(mapEntry[K, V]{key: key})
	if err != nil {
		return prior, false, err
	}
	if details.modified {
		return details.priorValue.value, true, nil
	}
	return prior, false, nil
}

func (m *MutableMap[K, V]) Clear() error {
	return m.c.clear()
}

func (m *MutableMap[K, V]) Iterator() *mapIterator[K, V] {
	guard := newFailFastGuard(&m.c.modCount)
	return &mapIterator[K, V]{inner: newTrieIterator[mapEntry[K, V]](m.c.root, guard)}
}

func (m *MutableMap[K, V]) ToImmutable() *ImmutableMap[K, V] {
	return &ImmutableMap[K, V]{c: m.c.freeze()}
}
