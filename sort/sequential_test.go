package sort

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{0, 1, 2, 3, 15, 16, 17, 100, 1000, 5000} {
		arr := randomInts(rng, n, n+1)
		want := slices.Clone(arr)
		slices.Sort(want)

		require.NoError(t, Sequential(arr, 0, len(arr)))
		require.Equal(t, want, arr, "n=%d", n)
	}
}

func TestSequentialSubRange(t *testing.T) {
	arr := []int{9, 8, 7, 6, 5, 4, 3, 2, 1}
	require.NoError(t, Sequential(arr, 2, 6))
	require.Equal(t, []int{9, 8, 4, 5, 6, 7, 3, 2, 1}, arr)
}

func TestSequentialAllEqual(t *testing.T) {
	arr := slices.Repeat([]int{3}, 200)
	require.NoError(t, Sequential(arr, 0, len(arr)))
	require.Equal(t, slices.Repeat([]int{3}, 200), arr)
}

func TestSequentialOutOfBounds(t *testing.T) {
	arr := []int{3, 2, 1}
	for _, r := range [][2]int{{-1, 2}, {2, 1}, {0, 4}} {
		err := Sequential(arr, r[0], r[1])
		require.True(t, errors.Is(err, ErrOutOfBounds), "range %v: %v", r, err)
	}
	require.Equal(t, []int{3, 2, 1}, arr)
}

func TestIsSorted(t *testing.T) {
	require.True(t, IsSorted(nil, 0, 0))
	require.True(t, IsSorted([]int{1, 1, 2}, 0, 3))
	require.False(t, IsSorted([]int{2, 1}, 0, 2))
	require.True(t, IsSorted([]int{5, 1, 2, 0}, 1, 3))
	require.False(t, IsSorted([]int{1, 2}, 0, 3))
}
