package champ

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// TestEngineRoundTripIdentity inserts a large, reproducible batch of
// strings and checks, once all are inserted, that every one is
// findable, that the trie's canonicalization invariant holds, and that
// the live element count matches what a full trie walk actually
// reaches - the three properties every mutation in this engine must
// preserve.
func TestEngineRoundTripIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := randomStrings(rng, 500)

	s := NewStringSet()
	for _, v := range values {
		s = s.Add(v)
	}

	require.Equal(t, len(values), s.Size())
	require.True(t, checkCanonical[string](s.c.root))
	require.Equal(t, s.Size(), countReachable[string](s.c.root))

	for _, v := range values {
		require.True(t, s.Contains(v))
	}
}

func TestEngineRemoveAllLeavesEmptyCanonicalTrie(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	values := randomStrings(rng, 300)

	s := NewStringSet()
	for _, v := range values {
		s = s.Add(v)
	}
	for _, v := range values {
		s = s.Remove(v)
	}

	require.True(t, s.IsEmpty())
	require.True(t, isEmptyNode[string](s.c.root))
	require.True(t, checkCanonical[string](s.c.root))
}

func TestEngineStructuralEqualityIndependentOfInsertionOrder(t *testing.T) {
	rng1 := rand.New(rand.NewSource(3))
	values := randomStrings(rng1, 100)

	forward := NewStringSet()
	for _, v := range values {
		forward = forward.Add(v)
	}

	shuffled := append([]string(nil), values...)
	rand.New(rand.NewSource(4)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	backward := NewStringSet()
	for _, v := range shuffled {
		backward = backward.Add(v)
	}

	require.True(t, forward.Equal(backward))
	require.ElementsMatch(t, forward.ToSlice(), backward.ToSlice())

	if diff := cmp.Diff(sortedCopy(forward.ToSlice()), sortedCopy(backward.ToSlice())); diff != "" {
		t.Errorf("sorted element sets differ (-forward +backward):\n%s", diff)
	}
}

func TestEngineMutableMatchesImmutableAfterEquivalentOps(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	values := randomStrings(rng, 200)

	immutable := NewStringSet()
	for _, v := range values {
		immutable = immutable.Add(v)
	}

	mutable := NewStringSet().ToMutable()
	for _, v := range values {
		_, err := mutable.Add(v)
		require.NoError(t, err)
	}

	require.Equal(t, immutable.Size(), mutable.Size())
	for _, v := range values {
		require.Equal(t, immutable.Contains(v), mutable.Contains(v))
	}
}

// randomStrings generates n random, guaranteed-distinct strings: each
// carries its index as a suffix so the test's size/membership
// assertions don't depend on avoiding an accidental hash-space
// collision in the random prefix.
func randomStrings(rng *rand.Rand, n int) []string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	out := make([]string, n)
	for i := range out {
		length := 4 + rng.Intn(12)
		buf := make([]byte, length)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		out[i] = string(buf) + "-" + strconv.Itoa(i)
	}
	return out
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
