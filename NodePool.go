package champ

import "sync"

// NodePoolOptions configures an opt-in node recycler for write-heavy
// mutable-view workloads. Off by default: a pure in-memory structure
// has far less allocation pressure than the teacher's disk-backed one
// (there is no serialize-then-discard step generating garbage on every
// write), and recycling is only safe once a node's exclusive ownership
// has been proven, so it buys the most when a single mutable view
// performs many writes before converting back to immutable.
type NodePoolOptions struct {
	// MaxSize bounds how many recycled nodes are held at once. Beyond
	// this, discarded nodes are simply dropped for the garbage
	// collector to reclaim, exactly as the teacher's pool does.
	MaxSize int64
}

// NodePool recycles bitmapIndexedNode/hashCollisionNode allocations.
// Adapted from the teacher's NodePool.go (NewMariNodePool,
// GetINode/PutINode, GetLNode/PutLNode): the same
// sync.Pool-plus-size-cap shape, narrowed from two node kinds
// (internal/leaf) to CHAMP's two node kinds (bitmap-indexed/
// hash-collision).
type NodePool[D any] struct {
	maxSize int64
	size    int64

	bitmapPool    *sync.Pool
	collisionPool *sync.Pool
}

// NewNodePool creates a node pool with the given capacity. A nil
// *NodePool[D] (the zero value of the pointer) is always a valid,
// inert "no pooling" configuration - every Get/Put on it falls back to
// plain allocation/discard.
func NewNodePool[D any](opts NodePoolOptions) *NodePool[D] {
	np := &NodePool[D]{maxSize: opts.MaxSize}
	np.bitmapPool = &sync.Pool{New: func() any { return &bitmapIndexedNode[D]{} }}
	np.collisionPool = &sync.Pool{New: func() any { return &hashCollisionNode[D]{} }}
	return np
}

// GetBitmapNode returns a reset bitmapIndexedNode, reused from the
// pool when available.
func (np *NodePool[D]) GetBitmapNode() *bitmapIndexedNode[D] {
	if np == nil {
		return &bitmapIndexedNode[D]{}
	}
	n := np.bitmapPool.Get().(*bitmapIndexedNode[D])
	if np.size > 0 {
		np.size--
	}
	return n
}

// PutBitmapNode returns node to the pool once the caller has proven it
// is exclusively owned and no longer reachable from any published
// view. Exceeding MaxSize simply drops the node for the garbage
// collector, as in the teacher's PutINode.
func (np *NodePool[D]) PutBitmapNode(node *bitmapIndexedNode[D]) {
	if np == nil || node == nil {
		return
	}
	if np.size >= np.maxSize {
		return
	}
	resetBitmapNode(node)
	np.bitmapPool.Put(node)
	np.size++
}

// GetCollisionNode returns a reset hashCollisionNode, reused from the
// pool when available.
func (np *NodePool[D]) GetCollisionNode() *hashCollisionNode[D] {
	if np == nil {
		return &hashCollisionNode[D]{}
	}
	n := np.collisionPool.Get().(*hashCollisionNode[D])
	if np.size > 0 {
		np.size--
	}
	return n
}

// PutCollisionNode mirrors PutBitmapNode for the collision-node pool.
func (np *NodePool[D]) PutCollisionNode(node *hashCollisionNode[D]) {
	if np == nil || node == nil {
		return
	}
	if np.size >= np.maxSize {
		return
	}
	resetCollisionNode(node)
	np.collisionPool.Put(node)
	np.size++
}

func resetBitmapNode[D any](node *bitmapIndexedNode[D]) {
	node.dataMap = 0
	node.nodeMap = 0
	node.data = nil
	node.children = nil
	node.token = nil
}

func resetCollisionNode[D any](node *hashCollisionNode[D]) {
	node.hash = 0
	node.entries = nil
	node.token = nil
}

// recycleExclusive walks a trie owned by token and returns every node
// it exclusively owns to pool, for the bulk-discard case (Clear on a
// mutable view whose entire root is private to it). Nodes not owned by
// token are left untouched - they may still be reachable from a
// published immutable view.
func recycleExclusive[D any](pool *NodePool[D], node trieNode[D], token *mutationToken) {
	if pool == nil || token == nil || node == nil {
		return
	}
	switch n := node.(type) {
	case *bitmapIndexedNode[D]:
		if !owns(n.token, token) {
			return
		}
		for _, child := range n.children {
			recycleExclusive(pool, child, token)
		}
		pool.PutBitmapNode(n)
	case *hashCollisionNode[D]:
		if !owns(n.token, token) {
			return
		}
		pool.PutCollisionNode(n)
	}
}
