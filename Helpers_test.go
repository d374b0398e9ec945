package champ

// Shared test fixtures: plain int hashing for ordinary trie shape
// tests, and a constant hash to deliberately force every inserted
// element down the same path into a hash-collision node.

func intHash(v int) uint32      { return uint32(v) }
func intEquals(a, b int) bool   { return a == b }
func constantHash(_ int) uint32 { return 7 }

// containsCollisionNode reports whether node or any of its descendants
// is a hashCollisionNode.
func containsCollisionNode[D any](node trieNode[D]) bool {
	switch n := node.(type) {
	case *hashCollisionNode[D]:
		return true
	case *bitmapIndexedNode[D]:
		for _, child := range n.children {
			if containsCollisionNode[D](child) {
				return true
			}
		}
	}
	return false
}
