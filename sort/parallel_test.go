package sort

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSorter(t *testing.T, cutoff, parallelism int) *Sorter {
	t.Helper()
	s, err := NewSorter(Config{Cutoff: cutoff, Parallelism: parallelism})
	require.NoError(t, err)
	return s
}

func TestSortScenarios(t *testing.T) {
	cases := []struct {
		name   string
		input  []int
		cutoff int
		want   []int
	}{
		{"split down to singletons", []int{5, 3, 1, 4, 2}, 1, []int{1, 2, 3, 4, 5}},
		{"already sorted", []int{1, 2, 3, 4, 5}, 2, []int{1, 2, 3, 4, 5}},
		{"pure fallback", []int{5, 4, 3, 2, 1}, 1000, []int{1, 2, 3, 4, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSorter(t, tc.cutoff, 4)
			arr := slices.Clone(tc.input)
			require.NoError(t, s.Sort(arr, 0, len(arr)))
			require.Equal(t, tc.want, arr)
		})
	}
}

func TestSortOutOfBounds(t *testing.T) {
	s := newTestSorter(t, 1, 4)
	arr := []int{3, 1, 2}

	for _, r := range [][2]int{{-1, 3}, {0, 4}, {2, 1}} {
		err := s.Sort(arr, r[0], r[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "range %v: %v", r, err)
	}
	require.Equal(t, []int{3, 1, 2}, arr, "array must be left unmodified")
}

func TestSortBoundary(t *testing.T) {
	s := newTestSorter(t, 1, 4)

	empty := []int{}
	require.NoError(t, s.Sort(empty, 0, 0))
	require.NoError(t, s.Sort(nil, 0, 0))

	arr := []int{4, 3, 2}
	require.NoError(t, s.Sort(arr, 1, 1))
	require.NoError(t, s.Sort(arr, 2, 3))
	require.Equal(t, []int{4, 3, 2}, arr)
}

func TestSortCorrectness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, cutoff := range []int{1, 2, 7, 64, 1000} {
		for _, parallelism := range []int{1, 2, 8} {
			s := newTestSorter(t, cutoff, parallelism)
			for _, n := range []int{0, 1, 2, 3, 10, 100, 1023, 4096} {
				name := fmt.Sprintf("cutoff=%d/parallelism=%d/n=%d", cutoff, parallelism, n)
				arr := randomInts(rng, n, n/2+1)
				want := slices.Clone(arr)
				slices.Sort(want)

				require.NoError(t, s.SortAll(arr), name)
				require.Equal(t, want, arr, name)
			}
		}
	}
}

func TestSortSubRangeLeavesRestUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := newTestSorter(t, 8, 4)

	arr := randomInts(rng, 500, 1000)
	orig := slices.Clone(arr)
	from, to := 37, 421

	require.NoError(t, s.Sort(arr, from, to))

	require.Equal(t, orig[:from], arr[:from])
	require.Equal(t, orig[to:], arr[to:])
	want := slices.Clone(orig[from:to])
	slices.Sort(want)
	require.Equal(t, want, arr[from:to])
}

func TestSortIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := newTestSorter(t, 16, 4)

	arr := randomInts(rng, 3000, 100)
	require.NoError(t, s.SortAll(arr))
	once := slices.Clone(arr)
	require.NoError(t, s.SortAll(arr))
	require.Equal(t, once, arr)
}

func TestSortMatchesFallbackUnderCutoff(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	s := newTestSorter(t, 1000, 4)
	for _, n := range []int{0, 1, 5, 17, 999} {
		arr := randomInts(rng, n, 50)
		oracle := slices.Clone(arr)

		require.NoError(t, s.SortAll(arr))
		require.NoError(t, Sequential(oracle, 0, len(oracle)))
		require.Equal(t, oracle, arr, "n=%d", n)
	}
}

func TestSortTaskFailure(t *testing.T) {
	s := newTestSorter(t, 4, 4)
	s.alloc = func(n int) []int {
		if n == 3 {
			panic("allocation failed")
		}
		return make([]int, n)
	}

	arr := []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	err := s.SortAll(arr)

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTaskFailed), "%v", err)
	require.Contains(t, err.Error(), "allocation failed")
	require.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, arr, "no writeback after a failed task")
}

func TestSortTaskFailureWithErrorValue(t *testing.T) {
	s := newTestSorter(t, 2, 1)
	oom := errors.New("out of memory")
	s.alloc = func(n int) []int {
		panic(oom)
	}

	arr := []int{3, 1, 2, 0}
	err := s.SortAll(arr)

	require.True(t, errors.Is(err, ErrTaskFailed), "%v", err)
	require.True(t, errors.Is(err, oom), "%v", err)
	require.Equal(t, []int{3, 1, 2, 0}, arr)
}

func TestNewSorterRejectsInvalidConfig(t *testing.T) {
	for _, cutoff := range []int{0, -1} {
		_, err := NewSorter(Config{Cutoff: cutoff, Parallelism: 1})
		require.True(t, errors.Is(err, ErrInvalidCutoff), "cutoff=%d: %v", cutoff, err)
	}
	_, err := NewSorter(Config{Cutoff: 10, Parallelism: 0})
	require.True(t, errors.Is(err, ErrInvalidParallelism), "%v", err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 1000, cfg.Cutoff)
	require.Positive(t, cfg.Parallelism)
	require.NoError(t, cfg.Validate())
}

func TestSuggestCutoff(t *testing.T) {
	require.Equal(t, 501, SuggestCutoff(500))
	require.Equal(t, 300, SuggestCutoff(5000))
	require.Equal(t, 800, SuggestCutoff(50000))
	require.Equal(t, 1500, SuggestCutoff(1<<20))
}

func TestSortSaturatedPool(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := newTestSorter(t, 4, 1)

	// 슬롯을 모두 점유한 상태: 모든 태스크가 호출자에서 실행되어야 함
	require.True(t, s.Pool().TryAcquire())
	defer s.Pool().Release()

	arr := randomInts(rng, 1000, 1000)
	want := slices.Clone(arr)
	slices.Sort(want)
	require.NoError(t, s.SortAll(arr))
	require.Equal(t, want, arr)
	require.Zero(t, testutil.ToFloat64(s.metrics.Tasks.WithLabelValues(modeAsync)))
}

func TestSortReleasesPoolSlots(t *testing.T) {
	s := newTestSorter(t, 2, 3)
	arr := randomInts(rand.New(rand.NewSource(6)), 2000, 10)
	require.NoError(t, s.SortAll(arr))

	used, capacity := s.Pool().Status()
	require.Zero(t, used)
	require.Equal(t, 3, capacity)
}

func TestSortConcurrentCallers(t *testing.T) {
	shared := newTestSorter(t, 32, 4)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	results := make([][]int, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// 호출마다 다른 컷오프의 Sorter 도 섞어서 사용
			s := shared
			if i%2 == 1 {
				var err error
				if s, err = NewSorter(Config{Cutoff: i + 1, Parallelism: 2}); err != nil {
					errs[i] = err
					return
				}
			}
			arr := randomInts(rand.New(rand.NewSource(int64(i))), 5000, 5000)
			errs[i] = s.SortAll(arr)
			results[i] = arr
		}()
	}
	wg.Wait()

	for i := range 8 {
		require.NoError(t, errs[i])
		require.True(t, slices.IsSorted(results[i]), "caller %d", i)
	}
}

func TestSortMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	s, err := NewSorter(Config{Cutoff: 1, Parallelism: 2}, WithMetrics(m))
	require.NoError(t, err)

	arr := []int{5, 3, 1, 4, 2}
	require.NoError(t, s.SortAll(arr))

	// 5 -> (2, 3), 2 -> (1, 1), 3 -> (1, 2), 2 -> (1, 1)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Merges))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.SequentialSorts))
	tasks := testutil.ToFloat64(m.Tasks.WithLabelValues(modeAsync)) +
		testutil.ToFloat64(m.Tasks.WithLabelValues(modeInline))
	assert.Equal(t, 8.0, tasks)
	assert.Zero(t, testutil.ToFloat64(m.TaskFailures))

	_, err = NewMetrics(reg)
	require.Error(t, err, "registering twice on one registry must fail")
}

func BenchmarkSort(b *testing.B) {
	numElements := 1 << 20
	original := randomInts(rand.New(rand.NewSource(42)), numElements, numElements)
	src := make([]int, numElements)

	for _, cutoff := range []int{1000, 10000, 100000} {
		b.Run(fmt.Sprintf("cutoff=%d", cutoff), func(b *testing.B) {
			s, err := NewSorter(Config{Cutoff: cutoff, Parallelism: DefaultConfig().Parallelism})
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				copy(src, original)
				b.StartTimer()
				if err := s.SortAll(src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSequential(b *testing.B) {
	numElements := 1 << 20
	original := randomInts(rand.New(rand.NewSource(42)), numElements, numElements)
	src := make([]int, numElements)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		copy(src, original)
		b.StartTimer()
		sequentialSort(src, 0, len(src))
	}
}
