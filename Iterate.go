package champ

import "container/heap"

// Three iteration strategies live in this file:
//
//  1. a fixed-depth-stack walker for arbitrary (trie) order - the
//     teacher's printChildrenRecursive (Utils.go) walks the same shape
//     of structure via the call stack; this rewrites it as an explicit
//     bounded stack, matching jsouthworth-immutable's own Iterator
//     below, so storage cost is a small constant rather than
//     proportional to Go's goroutine stack growth;
//  2. a bucket-sorted iterator for sequenced collections whose
//     sequence numbers are already dense (no gaps to speak of), O(N)
//     to build and O(1) per Next;
//  3. a heap-based iterator for sequenced collections with sparse
//     sequence numbers, the fallback when bucketing would allocate a
//     largely-empty array.
//
// The fixed-depth-stack walker's shape is grounded on jsouthworth-
// immutable's own Iterator (other_examples/hashmap-iterator.go): a
// fixed [maxDepth+1]-sized array stack with HasNext/Next, the same
// incremental never-materializes-ahead walk trieIterator below
// performs. The bucket and heap sequenced iterators have no such
// analog in the pack - jsouthworth-immutable's map carries no
// sequence-number concept at all - and are built directly from the
// bucket/heap dispatch the data model calls for (mustUseBucket).

// stackFrame is one level of the arbitrary-order walk: a node plus how
// far into its data/children arrays the walk has progressed.
type stackFrame[D any] struct {
	node     trieNode[D]
	dataPos  int
	childPos int
}

// trieIterator walks a trie in arbitrary (bitmap) order using a
// maxDepth-bounded explicit stack. It satisfies the fail-fast contract
// via the modCount snapshot it is constructed with; FailFast.go
// performs the actual comparison.
type trieIterator[D any] struct {
	stack    []stackFrame[D]
	current  D
	hasCurr  bool
	guard    failFastGuard
}

func newTrieIterator[D any](root trieNode[D], guard failFastGuard) *trieIterator[D] {
	it := &trieIterator[D]{guard: guard, stack: make([]stackFrame[D], 0, maxDepth+1)}
	if !isEmptyNode[D](root) {
		it.stack = append(it.stack, stackFrame[D]{node: root})
	}
	return it
}

// HasNext reports whether a call to Next would succeed.
func (it *trieIterator[D]) HasNext() bool {
	return it.peekNext()
}

// Next advances the iterator and returns the next element in trie
// order. Returns ErrConcurrentModification if the underlying
// collection changed since the iterator was created, and
// ErrNoSuchElement if the iterator is exhausted.
func (it *trieIterator[D]) Next() (D, error) {
	var zero D
	if err := it.guard.check(); err != nil {
		return zero, err
	}
	if !it.peekNext() {
		return zero, ErrNoSuchElement
	}
	it.hasCurr = false
	return it.current, nil
}

// peekNext advances the internal stack until it finds the next data
// element (caching it in it.current) or exhausts the trie.
func (it *trieIterator[D]) peekNext() bool {
	if it.hasCurr {
		return true
	}
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		switch n := top.node.(type) {
		case *bitmapIndexedNode[D]:
			if top.dataPos < len(n.data) {
				it.current = n.data[top.dataPos]
				top.dataPos++
				it.hasCurr = true
				return true
			}
			if top.childPos < len(n.children) {
				child := n.children[top.childPos]
				top.childPos++
				it.stack = append(it.stack, stackFrame[D]{node: child})
				continue
			}
			it.stack = it.stack[:len(it.stack)-1]
		case *hashCollisionNode[D]:
			if top.dataPos < len(n.entries) {
				it.current = n.entries[top.dataPos]
				top.dataPos++
				it.hasCurr = true
				return true
			}
			it.stack = it.stack[:len(it.stack)-1]
		default:
			it.stack = it.stack[:len(it.stack)-1]
		}
	}
	return false
}

// collectAll drains every element from root in arbitrary trie order.
// Used internally wherever a full materialized snapshot is needed
// (ToSlice/Keys, the input of the sequenced iterators, and the
// sequenced renumbering rebuild).
func collectAll[D any](root trieNode[D]) []D {
	out := make([]D, 0, countReachable(root))
	it := newTrieIterator[D](root, failFastGuard{})
	for it.HasNext() {
		v, _ := it.Next()
		out = append(out, v)
	}
	return out
}

// mustUseBucket decides which sequenced strategy to use: bucketing
// wins when the sequence window [first, last] is no more than a small
// constant multiple of the live element count, so the allocated bucket
// array stays close to dense. Otherwise the heap-based iterator avoids
// allocating an array mostly full of gaps.
func mustUseBucket(size int, first, last int32) bool {
	if size == 0 {
		return true
	}
	span := int64(last) - int64(first) + 1
	return span <= int64(size)*2
}

// bucketSequencedIterator places every sequencedData[T] into a slot
// indexed by seq-first, then yields slots front to back. O(N) to
// build, O(1) per Next.
type bucketSequencedIterator[T any] struct {
	buckets []sequencedData[T]
	present []bool
	pos     int
	guard   failFastGuard
}

func newBucketSequencedIterator[T any](entries []sequencedData[T], first, last int32, reverse bool, guard failFastGuard) *bucketSequencedIterator[T] {
	span := int(last-first) + 1
	if span < 0 {
		span = 0
	}
	buckets := make([]sequencedData[T], span)
	present := make([]bool, span)
	for _, e := range entries {
		idx := int(e.seq - first)
		buckets[idx] = e
		present[idx] = true
	}
	if reverse {
		reverseBuckets(buckets, present)
	}
	return &bucketSequencedIterator[T]{buckets: buckets, present: present, guard: guard}
}

func reverseBuckets[T any](buckets []sequencedData[T], present []bool) {
	for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
		buckets[i], buckets[j] = buckets[j], buckets[i]
		present[i], present[j] = present[j], present[i]
	}
}

func (it *bucketSequencedIterator[T]) HasNext() bool {
	for it.pos < len(it.buckets) && !it.present[it.pos] {
		it.pos++
	}
	return it.pos < len(it.buckets)
}

func (it *bucketSequencedIterator[T]) Next() (T, error) {
	var zero T
	if err := it.guard.check(); err != nil {
		return zero, err
	}
	if !it.HasNext() {
		return zero, ErrNoSuchElement
	}
	v := it.buckets[it.pos].value
	it.pos++
	return v, nil
}

// heapEntry orders sequencedData by sequence number, ascending or
// descending depending on the iterator's direction.
type heapEntry[T any] struct {
	value T
	seq   int32
}

type seqHeap[T any] struct {
	entries []heapEntry[T]
	reverse bool
}

func (h seqHeap[T]) Len() int { return len(h.entries) }
func (h seqHeap[T]) Less(i, j int) bool {
	if h.reverse {
		return h.entries[i].seq > h.entries[j].seq
	}
	return h.entries[i].seq < h.entries[j].seq
}
func (h seqHeap[T]) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *seqHeap[T]) Push(x any)   { h.entries = append(h.entries, x.(heapEntry[T])) }
func (h *seqHeap[T]) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[:n-1]
	return item
}

// heapSequencedIterator yields sequenced entries in order via a
// binary heap, the fallback for sparse sequence windows where
// bucketing (bucketSequencedIterator) would allocate a mostly-empty
// array. O(N) to build (heap.Init), O(log N) per Next.
type heapSequencedIterator[T any] struct {
	h     *seqHeap[T]
	guard failFastGuard
}

func newHeapSequencedIterator[T any](entries []sequencedData[T], reverse bool, guard failFastGuard) *heapSequencedIterator[T] {
	h := &seqHeap[T]{entries: make([]heapEntry[T], 0, len(entries)), reverse: reverse}
	for _, e := range entries {
		h.entries = append(h.entries, heapEntry[T]{value: e.value, seq: e.seq})
	}
	heap.Init(h)
	return &heapSequencedIterator[T]{h: h, guard: guard}
}

func (it *heapSequencedIterator[T]) HasNext() bool {
	return it.h.Len() > 0
}

func (it *heapSequencedIterator[T]) Next() (T, error) {
	var zero T
	if err := it.guard.check(); err != nil {
		return zero, err
	}
	if it.h.Len() == 0 {
		return zero, ErrNoSuchElement
	}
	item := heap.Pop(it.h).(heapEntry[T])
	return item.value, nil
}

// newSequencedIterator picks between the bucket and heap strategies
// per mustUseBucket, and returns a single interface both expose.
func newSequencedIterator[T any](entries []sequencedData[T], size int, first, last int32, reverse bool, guard failFastGuard) sequencedIterator[T] {
	if mustUseBucket(size, first, last) {
		return newBucketSequencedIterator(entries, first, last, reverse, guard)
	}
	return newHeapSequencedIterator(entries, reverse, guard)
}

// sequencedIterator is the common surface both sequenced strategies
// implement.
type sequencedIterator[T any] interface {
	HasNext() bool
	Next() (T, error)
}
