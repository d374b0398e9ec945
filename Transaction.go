package champ

// baseContainer holds the state shared by every collection view
// (Set/Map, sequenced or not): the trie root, the live element count,
// the hash/equality pair, and - when this instance is a mutable view -
// the ownership token authorizing in-place mutation plus a
// modification counter for fail-fast iterators.
//
// Grounded on the teacher's Mari/MariTx split (Mari.go, Transaction.go):
// ViewTx/UpdateTx's read/write separation is the teacher's version of
// the mutable/immutable hand-off. This port collapses the closure-
// scoped transaction into direct ToMutable()/ToImmutable() methods,
// since the ownership token already makes the hand-off itself O(1) -
// there's no lock to scope a callback around.
type baseContainer[D any] struct {
	root     trieNode[D]
	size     int
	hashFn   HashFn[D]
	equalsFn EqualsFn[D]

	token       *mutationToken // non-nil only for a live mutable view
	invalidated bool           // true once ToImmutable() has frozen this view
	modCount    int
	pool        *NodePool[D]
}

func newEmptyContainer[D any](hashFn HashFn[D], equalsFn EqualsFn[D]) *baseContainer[D] {
	return &baseContainer[D]{root: emptyBitmapIndexedNode[D](), hashFn: hashFn, equalsFn: equalsFn}
}

func (c *baseContainer[D]) find(d D) (D, bool) {
	return engineFind(c.root, d, c.hashFn, c.equalsFn)
}

// ensureMutable reports ErrUnsupportedMutation for any mutation
// attempted through a read-only view, or through a mutable view that
// has already been frozen via freeze().
func (c *baseContainer[D]) ensureMutable() error {
	if c.token == nil || c.invalidated {
		return ErrUnsupportedMutation
	}
	return nil
}

// mutate applies replace at d in place (or copy-on-write, per the
// engine's ownership check), updating size/modCount bookkeeping.
func (c *baseContainer[D]) mutate(d D, replace ReplaceFn[D]) (*changeDetails[D], error) {
	if err := c.ensureMutable(); err != nil {
		return nil, err
	}
	newRoot, details := engineUpdate(c.root, c.token, d, replace, c.hashFn, c.equalsFn)
	c.root = newRoot
	if details.modified {
		if !details.replacedOld {
			c.size++
		}
		c.modCount++
	}
	return details, nil
}

func (c *baseContainer[D]) mutateRemove(d D) (*changeDetails[D], error) {
	if err := c.ensureMutable(); err != nil {
		return nil, err
	}
	newRoot, details := engineRemove(c.root, c.token, d, c.hashFn, c.equalsFn)
	c.root = newRoot
	if details.modified {
		c.size--
		c.modCount++
	}
	return details, nil
}

func (c *baseContainer[D]) clear() error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	recycleExclusive(c.pool, c.root, c.token)
	c.root = emptyBitmapIndexedNode[D]()
	c.size = 0
	c.modCount++
	return nil
}

// with returns an updated immutable container, or the receiver itself
// when the operation was a no-op (the "no-op returns the same
// reference" invariant).
func (c *baseContainer[D]) with(d D, replace ReplaceFn[D]) (*baseContainer[D], *changeDetails[D]) {
	newRoot, details := engineUpdate(c.root, nil, d, replace, c.hashFn, c.equalsFn)
	if !details.modified {
		return c, details
	}
	newSize := c.size
	if !details.replacedOld {
		newSize++
	}
	return &baseContainer[D]{root: newRoot, size: newSize, hashFn: c.hashFn, equalsFn: c.equalsFn}, details
}

func (c *baseContainer[D]) without(d D) (*baseContainer[D], *changeDetails[D]) {
	newRoot, details := engineRemove(c.root, nil, d, c.hashFn, c.equalsFn)
	if !details.modified {
		return c, details
	}
	return &baseContainer[D]{root: newRoot, size: c.size - 1, hashFn: c.hashFn, equalsFn: c.equalsFn}, details
}

// thaw hands off an immutable container's structure to a fresh mutable
// view: O(1), since no node is copied until the first write actually
// touches it.
func (c *baseContainer[D]) thaw(pool *NodePool[D]) *baseContainer[D] {
	return &baseContainer[D]{root: c.root, size: c.size, hashFn: c.hashFn, equalsFn: c.equalsFn, token: newMutationToken(), pool: pool}
}

// freeze hands a mutable view's structure off to a new immutable
// snapshot and invalidates the mutable view in place, so any further
// call through the original handle fails rather than silently
// mutating a node the new snapshot depends on.
func (c *baseContainer[D]) freeze() *baseContainer[D] {
	snapshot := &baseContainer[D]{root: c.root, size: c.size, hashFn: c.hashFn, equalsFn: c.equalsFn}
	c.invalidated = true
	c.token = nil
	return snapshot
}
