package champ

// mutationToken is the ownership capsule CHAMP hands off between a
// mutable view and the nodes it is allowed to mutate in place. It
// carries no fields: only its pointer identity matters. A node tagged
// with a given token may be mutated in place by an engine call that
// presents the identical token; any other caller must copy the node
// before changing it.
//
// This mirrors the teacher's MariINode.Version generation counter, but
// as a heap-allocated identity rather than a counter: a pointer never
// wraps around and never collides with a borrowed copy the way two
// unrelated structures could coincidentally share a version number.
type mutationToken struct{}

// newMutationToken allocates a fresh, globally-unique ownership token.
func newMutationToken() *mutationToken {
	return new(mutationToken)
}

// owns reports whether candidate is the same token as owner, i.e.
// whether a caller holding candidate may mutate a node tagged with
// owner in place. A nil owner means the node is shared/immutable and
// may never be mutated in place, regardless of candidate.
func owns(owner, candidate *mutationToken) bool {
	return owner != nil && candidate != nil && owner == candidate
}
