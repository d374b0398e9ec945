package champ

// This file holds the single recursive update/remove/find engine
// shared by every collection view. Grounded on the teacher's
// putRecursive/getRecursive/deleteRecursive (copy-path-on-write
// recursion shape, one step per trie level) and on
// jsouthworth-immutable's assoc/without/find (the CHAMP-faithful
// one-bitmap-per-level variant the teacher's byte-trie needed
// adapting down to). Unlike the teacher, there is no compare-and-swap
// retry loop here: the ownership token already tells each call whether
// it may mutate in place, so there is nothing to retry against.

// engineFind looks up d in the subtree rooted at root.
func engineFind[D any](root trieNode[D], d D, hashFn HashFn[D], equalsFn EqualsFn[D]) (D, bool) {
	return findIn(root, d, hashFn(d), 0, equalsFn)
}

func findIn[D any](node trieNode[D], d D, hash uint32, shift uint, equalsFn EqualsFn[D]) (D, bool) {
	switch n := node.(type) {
	case *bitmapIndexedNode[D]:
		bit := bitposAt(hash, shift)
		switch {
		case isSet(n.dataMap, bit):
			candidate := n.data[n.dataIndexAt(bit)]
			if equalsFn(candidate, d) {
				return candidate, true
			}
		case isSet(n.nodeMap, bit):
			return findIn(n.children[n.nodeIndexAt(bit)], d, hash, nextShift(shift), equalsFn)
		}
	case *hashCollisionNode[D]:
		if idx := n.indexOfEntry(d, equalsFn); idx >= 0 {
			return n.entries[idx], true
		}
	}
	var zero D
	return zero, false
}

// engineUpdate inserts d into the subtree rooted at root, or resolves
// a collision with an existing equal element via replace. token, when
// non-nil, authorizes in-place mutation of any node it already owns;
// any node copied along the way is handed token as its new owner, so a
// mutable view's second write to the same path no longer needs to
// copy.
func engineUpdate[D any](root trieNode[D], token *mutationToken, d D, replace ReplaceFn[D], hashFn HashFn[D], equalsFn EqualsFn[D]) (trieNode[D], *changeDetails[D]) {
	details := &changeDetails[D]{}
	newRoot := updateIn(root, token, d, hashFn(d), 0, replace, hashFn, equalsFn, details)
	return newRoot, details
}

func updateIn[D any](node trieNode[D], token *mutationToken, d D, hash uint32, shift uint, replace ReplaceFn[D], hashFn HashFn[D], equalsFn EqualsFn[D], details *changeDetails[D]) trieNode[D] {
	switch n := node.(type) {
	case *bitmapIndexedNode[D]:
		return updateBitmapNode(n, token, d, hash, shift, replace, hashFn, equalsFn, details)
	case *hashCollisionNode[D]:
		return updateCollisionNode(n, token, d, replace, equalsFn, details)
	default:
		details.markInserted()
		return newBitmapIndexedNode(token, bitposAt(hash, shift), 0, []D{d}, nil)
	}
}

func updateBitmapNode[D any](
	n *bitmapIndexedNode[D], token *mutationToken, d D, hash uint32, shift uint,
	replace ReplaceFn[D], hashFn HashFn[D], equalsFn EqualsFn[D], details *changeDetails[D],
) trieNode[D] {
	bit := bitposAt(hash, shift)

	switch {
	case isSet(n.dataMap, bit):
		idx := n.dataIndexAt(bit)
		existing := n.data[idx]

		if equalsFn(existing, d) {
			newValue := replace(existing, d)
			if equalsFn(existing, newValue) {
				return n
			}
			details.markReplaced(existing)
			return n.withDataReplaced(token, idx, newValue)
		}

		details.markInserted()
		return n.withDataPromoted(token, bit, idx, existing, d, hash, shift, hashFn)
	case isSet(n.nodeMap, bit):
		idx := n.nodeIndexAt(bit)
		child := n.children[idx]
		newChild := updateIn(child, token, d, hash, nextShift(shift), replace, hashFn, equalsFn, details)
		if newChild == child {
			return n
		}
		return n.withChildReplaced(token, idx, newChild)
	default:
		details.markInserted()
		return n.withDataInserted(token, bit, d)
	}
}

func updateCollisionNode[D any](
	n *hashCollisionNode[D], token *mutationToken, d D,
	replace ReplaceFn[D], equalsFn EqualsFn[D], details *changeDetails[D],
) trieNode[D] {
	if idx := n.indexOfEntry(d, equalsFn); idx >= 0 {
		existing := n.entries[idx]
		newValue := replace(existing, d)
		if equalsFn(existing, newValue) {
			return n
		}
		details.markReplaced(existing)

		if owns(n.token, token) {
			n.entries[idx] = newValue
			return n
		}
		newEntries := append([]D(nil), n.entries...)
		newEntries[idx] = newValue
		return newHashCollisionNode(token, n.hash, newEntries)
	}

	details.markInserted()
	if owns(n.token, token) {
		n.entries = append(n.entries, d)
		return n
	}
	newEntries := make([]D, len(n.entries)+1)
	copy(newEntries, n.entries)
	newEntries[len(n.entries)] = d
	return newHashCollisionNode(token, n.hash, newEntries)
}

// mergeTwoEntries builds the smallest subtree that separates a and b,
// descending one partition level at a time until their hash chunks
// diverge, or falling back to a hash-collision node once shift runs
// past the width of the hash.
func mergeTwoEntries[D any](token *mutationToken, a D, aHash uint32, b D, bHash uint32, shift uint) trieNode[D] {
	if atMaxDepth(shift) {
		return newHashCollisionNode(token, aHash, []D{a, b})
	}

	aBit := bitposAt(aHash, shift)
	bBit := bitposAt(bHash, shift)

	if aBit != bBit {
		if aBit < bBit {
			return newBitmapIndexedNode(token, aBit|bBit, 0, []D{a, b}, nil)
		}
		return newBitmapIndexedNode(token, aBit|bBit, 0, []D{b, a}, nil)
	}

	child := mergeTwoEntries(token, a, aHash, b, bHash, nextShift(shift))
	return newBitmapIndexedNode[D](token, 0, aBit, nil, []trieNode[D]{child})
}

// engineRemove deletes an element equal to d from the subtree rooted
// at root, collapsing any child that canonicalization requires be
// inlined back into its parent.
func engineRemove[D any](root trieNode[D], token *mutationToken, d D, hashFn HashFn[D], equalsFn EqualsFn[D]) (trieNode[D], *changeDetails[D]) {
	details := &changeDetails[D]{}
	newRoot := removeFrom(root, token, d, hashFn(d), 0, equalsFn, details)
	return newRoot, details
}

func removeFrom[D any](node trieNode[D], token *mutationToken, d D, hash uint32, shift uint, equalsFn EqualsFn[D], details *changeDetails[D]) trieNode[D] {
	switch n := node.(type) {
	case *bitmapIndexedNode[D]:
		return removeFromBitmapNode(n, token, d, hash, shift, equalsFn, details)
	case *hashCollisionNode[D]:
		return removeFromCollisionNode(n, token, d, equalsFn, details)
	default:
		return node
	}
}

func removeFromBitmapNode[D any](
	n *bitmapIndexedNode[D], token *mutationToken, d D, hash uint32, shift uint,
	equalsFn EqualsFn[D], details *changeDetails[D],
) trieNode[D] {
	bit := bitposAt(hash, shift)

	switch {
	case isSet(n.dataMap, bit):
		idx := n.dataIndexAt(bit)
		existing := n.data[idx]
		if !equalsFn(existing, d) {
			return n
		}
		details.markRemoved(existing)
		return n.withDataRemoved(token, bit, idx)
	case isSet(n.nodeMap, bit):
		idx := n.nodeIndexAt(bit)
		child := n.children[idx]
		newChild := removeFrom(child, token, d, hash, nextShift(shift), equalsFn, details)
		if newChild == child {
			return n
		}
		return n.afterChildRemoval(token, bit, idx, newChild)
	default:
		return n
	}
}

func removeFromCollisionNode[D any](n *hashCollisionNode[D], token *mutationToken, d D, equalsFn EqualsFn[D], details *changeDetails[D]) trieNode[D] {
	idx := n.indexOfEntry(d, equalsFn)
	if idx < 0 {
		return n
	}
	details.markRemoved(n.entries[idx])

	newEntries := make([]D, len(n.entries)-1)
	copy(newEntries, n.entries[:idx])
	copy(newEntries[idx:], n.entries[idx+1:])

	if owns(n.token, token) {
		n.entries = newEntries
		return n
	}
	return newHashCollisionNode(token, n.hash, newEntries)
}

// singleRemainingEntry reports the lone element of a node that has
// collapsed to arity one, the shape that must be inlined into its
// parent rather than kept as a standalone child.
func singleRemainingEntry[D any](node trieNode[D]) (D, bool) {
	switch n := node.(type) {
	case *bitmapIndexedNode[D]:
		if len(n.data) == 1 && len(n.children) == 0 {
			return n.data[0], true
		}
	case *hashCollisionNode[D]:
		if len(n.entries) == 1 {
			return n.entries[0], true
		}
	}
	var zero D
	return zero, false
}

func isEmptyNode[D any](node trieNode[D]) bool {
	return node.dataArity() == 0 && node.nodeArity() == 0
}
