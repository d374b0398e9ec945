package champ

import (
	"math"
	"sort"
)

// sequencedData wraps a plain element with an insertion-order tag.
// SequencedSet[T] stores trie elements of type sequencedData[T];
// SequencedMap[K, V] stores sequencedData[mapEntry[K, V]]. One wrapper
// and one renumbering predicate serve both, resolving the original
// distillation's two parallel (and subtly diverging) sequenced
// hierarchies into a single abstraction, per the unification decision
// recorded in DESIGN.md.
//
// Lineage note: this sequence-tagging + periodic-renumbering approach
// traces to Steindorfer's CHAMP work (2017) on ordered persistent
// tries; retained here as a documentation pointer only.
type sequencedData[T any] struct {
	value T
	seq   int32
}

// seqHashFn lifts a HashFn over T into one over sequencedData[T] that
// ignores the sequence number - two elements that differ only in
// position must still collide in the trie.
func seqHashFn[T any](inner HashFn[T]) HashFn[sequencedData[T]] {
	return func(s sequencedData[T]) uint32 { return inner(s.value) }
}

// seqEqualsFn lifts an EqualsFn over T the same way.
func seqEqualsFn[T any](inner EqualsFn[T]) EqualsFn[sequencedData[T]] {
	return func(a, b sequencedData[T]) bool { return inner(a.value, b.value) }
}

// Sequence number bounds: the int32 limits themselves. mustRenumber
// trips once either counter comes within one of them, so
// addFirst/addLast never overflow past math.MinInt32/math.MaxInt32 in
// a single step.
const (
	seqNumberMin = math.MinInt32
	seqNumberMax = math.MaxInt32
)

// mustRenumber decides whether the [first, last] sequence window has
// grown disproportionate to the live element count - either because
// heavy churn at one end has left large gaps (more than 4x size
// between the extremes), or because continued churn in the same
// direction would run the counters off the int32 range.
func mustRenumber(size int, first, last int32) bool {
	span := int64(last) - int64(first)
	if span > 4*int64(size) {
		return true
	}
	if first <= int32(seqNumberMin+1) || last >= int32(seqNumberMax-1) {
		return true
	}
	return false
}

// renumber rebuilds a sequenced trie from scratch, assigning fresh,
// densely-packed sequence numbers in the order `ordered` already
// presents its elements. Grounded on the teacher's
// serializeCurrentVersionToNewFile (Compact.go): the teacher's
// compaction rebuilds an on-disk trie from a traversal of the live
// version the same way this rebuilds an in-memory trie from a
// traversal of the live elements - "stop, collect, rebuild
// compacted" is the shared shape, even though nothing here touches a
// file.
func renumber[T any](orderedValues []T, token *mutationToken, hashFn HashFn[sequencedData[T]], equalsFn EqualsFn[sequencedData[T]]) (trieNode[sequencedData[T]], int32, int32) {
	var root trieNode[sequencedData[T]] = emptyBitmapIndexedNode[sequencedData[T]]()

	for i, v := range orderedValues {
		root, _ = engineUpdate(root, token, sequencedData[T]{value: v, seq: int32(i)}, takeNew[sequencedData[T]], hashFn, equalsFn)
	}

	if len(orderedValues) == 0 {
		return root, 0, -1
	}
	return root, 0, int32(len(orderedValues) - 1)
}

// sortBySeq returns data sorted by ascending sequence number. Used
// wherever a caller needs the full sequenced order but the cheaper
// bucket/heap iterators (Iterate.go) aren't applicable, e.g. just
// before a renumbering rebuild.
func sortBySeq[D any](data []D, seqOf func(D) int32) []D {
	sorted := append([]D(nil), data...)
	sort.Slice(sorted, func(i, j int) bool { return seqOf(sorted[i]) < seqOf(sorted[j]) })
	return sorted
}

// seqMode selects how a positional insert resolves a collision with an
// already-present element (by value, ignoring sequence number):
// addOnly leaves an existing element's position untouched (the plain
// Add/Put case), while toFirst/toLast relocate it (AddFirst/AddLast/
// MoveToFirst/MoveToLast all share this one shape, the same
// replace-combinator reuse Operation.go's engine applies one level
// down).
type seqMode int

const (
	seqModeAddOnly seqMode = iota
	seqModeFirst
	seqModeLast
)

func seqCandidate(mode seqMode, first, last int32, empty bool) int32 {
	if empty {
		return 0
	}
	if mode == seqModeFirst {
		return first - 1
	}
	return last + 1
}

func seqReplaceFn[T any](mode seqMode) ReplaceFn[sequencedData[T]] {
	if mode == seqModeAddOnly {
		return func(existing, _ sequencedData[T]) sequencedData[T] { return existing }
	}
	return func(existing, incoming sequencedData[T]) sequencedData[T] {
		return sequencedData[T]{value: existing.value, seq: incoming.seq}
	}
}

// applySeqInsert performs one positional insert/move and, when the
// resulting [first, last] window has grown disproportionate, rebuilds
// via renumber. Shared by every sequenced collection's Add/AddFirst/
// AddLast/MoveToFirst/MoveToLast, mutable or immutable - token is nil
// for an immutable "with" call and the view's live token for a mutable
// one, exactly as engineUpdate itself distinguishes the two.
func applySeqInsert[T any](
	root trieNode[sequencedData[T]], token *mutationToken, first, last int32, size int, v T, mode seqMode,
	hashFn HashFn[sequencedData[T]], equalsFn EqualsFn[sequencedData[T]],
) (newRoot trieNode[sequencedData[T]], newFirst, newLast int32, newSize int, details *changeDetails[sequencedData[T]]) {
	candidate := seqCandidate(mode, first, last, size == 0)
	d := sequencedData[T]{value: v, seq: candidate}
	// every seqMode relocates the element to candidate on replace - add
	// only never replaces in the first place, since its replace
	// combinator returns the untouched existing element, which the
	// engine then recognizes as a no-op before details.modified is ever
	// set.
	return applySeqInsertWith(root, token, first, last, size, d, seqReplaceFn[T](mode), true, hashFn, equalsFn)
}

// applySeqInsertWith is applySeqInsert generalized over an explicit
// candidate element and replace combinator, so a caller whose replace
// logic isn't a plain "move or leave" (e.g. SequencedMap's Put, which
// must update the bound value in place without disturbing an existing
// key's position) can still reuse the shared first/last bookkeeping
// and renumber trigger. expandOnReplace must be false when replace can
// leave an existing element's sequence number where it was (Put);
// otherwise a value-only update would spuriously widen [first, last].
func applySeqInsertWith[T any](
	root trieNode[sequencedData[T]], token *mutationToken, first, last int32, size int,
	d sequencedData[T], replace ReplaceFn[sequencedData[T]], expandOnReplace bool,
	hashFn HashFn[sequencedData[T]], equalsFn EqualsFn[sequencedData[T]],
) (newRoot trieNode[sequencedData[T]], newFirst, newLast int32, newSize int, details *changeDetails[sequencedData[T]]) {
	candidate := d.seq
	newRoot, details = engineUpdate(root, token, d, replace, hashFn, equalsFn)

	newFirst, newLast, newSize = first, last, size
	if !details.modified {
		return
	}

	if !details.replacedOld || expandOnReplace {
		if size == 0 || candidate < newFirst {
			newFirst = candidate
		}
		if size == 0 || candidate > newLast {
			newLast = candidate
		}
	}
	if !details.replacedOld {
		newSize++
	}

	if mustRenumber(newSize, newFirst, newLast) {
		newRoot, newFirst, newLast = rebuildBySeq(newRoot, token, hashFn, equalsFn)
	}
	return
}

// applySeqRemove deletes the element equal to v (by value) and
// rebalances first/last, rebuilding via renumber when removal leaves
// the sequence window disproportionate to the new size.
func applySeqRemove[T any](
	root trieNode[sequencedData[T]], token *mutationToken, first, last int32, size int, v T,
	hashFn HashFn[sequencedData[T]], equalsFn EqualsFn[sequencedData[T]],
) (newRoot trieNode[sequencedData[T]], newFirst, newLast int32, newSize int, details *changeDetails[sequencedData[T]]) {
	newRoot, details = engineRemove(root, token, sequencedData[T]{value: v}, hashFn, equalsFn)
	newFirst, newLast, newSize = first, last, size
	if !details.modified {
		return
	}
	newSize--
	switch {
	case newSize == 0:
		newFirst, newLast = 0, -1
	case mustRenumber(newSize, newFirst, newLast):
		newRoot, newFirst, newLast = rebuildBySeq(newRoot, token, hashFn, equalsFn)
	}
	return
}

func rebuildBySeq[T any](root trieNode[sequencedData[T]], token *mutationToken, hashFn HashFn[sequencedData[T]], equalsFn EqualsFn[sequencedData[T]]) (trieNode[sequencedData[T]], int32, int32) {
	ordered := sortBySeq(collectAll(root), func(s sequencedData[T]) int32 { return s.seq })
	values := make([]T, len(ordered))
	for i, e := range ordered {
		values[i] = e.value
	}
	return renumber(values, token, hashFn, equalsFn)
}
