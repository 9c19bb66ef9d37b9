package sort

import (
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Option Sorter 생성 옵션
type Option func(*Sorter)

// WithMetrics 외부에서 만든 메트릭 사용 (레지스트리 공유용)
func WithMetrics(m *Metrics) Option {
	return func(s *Sorter) {
		s.metrics = m
	}
}

// Sorter 컷오프 기반 병렬 머지소트 엔진.
// 하나의 Sorter 를 여러 고루틴에서 동시에 써도 된다 (서로 다른 배열 또는 겹치지 않는 범위).
type Sorter struct {
	cfg     Config
	pool    *Pool
	metrics *Metrics

	asyncTasks  prometheus.Counter
	inlineTasks prometheus.Counter

	// alloc 태스크 사본 버퍼 할당
	alloc func(n int) []int
}

// NewSorter 설정 검사 후 Sorter 생성. 잘못된 컷오프는 여기서 실패한다.
func NewSorter(cfg Config, opts ...Option) (*Sorter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sorter{
		cfg:   cfg,
		pool:  NewPool(cfg.Parallelism),
		alloc: func(n int) []int { return make([]int, n) },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		// 등록하지 않는 메트릭은 실패하지 않음
		s.metrics, _ = NewMetrics(nil)
	}
	s.asyncTasks = s.metrics.Tasks.WithLabelValues(modeAsync)
	s.inlineTasks = s.metrics.Tasks.WithLabelValues(modeInline)
	return s, nil
}

// Config 현재 설정
func (s *Sorter) Config() Config {
	return s.cfg
}

// Pool 이 Sorter 의 워커 풀
func (s *Sorter) Pool() *Pool {
	return s.pool
}

// Sort arr[from:to] 를 제자리에서 오름차순 정렬. 완전히 정렬된 뒤에 반환한다.
// 범위가 잘못되면 ErrOutOfBounds, 하위 태스크가 실패하면 ErrTaskFailed 로 표시된 오류.
func (s *Sorter) Sort(arr []int, from, to int) error {
	if err := checkRange(arr, from, to); err != nil {
		return err
	}
	return s.sortRange(arr, from, to)
}

// SortAll 배열 전체 정렬
func (s *Sorter) SortAll(arr []int) error {
	return s.Sort(arr, 0, len(arr))
}

// sortRange 분할 -> 두 태스크 -> 대기 -> 병합 -> 되쓰기.
// arr[from:to] 에 쓰는 것은 이 프레임뿐이고, 두 자식이 모두 끝난 뒤 한 번만 쓴다.
func (s *Sorter) sortRange(arr []int, from, to int) error {
	n := to - from
	if n < s.cfg.Cutoff || n < 2 {
		sequentialSort(arr, from, to)
		s.metrics.SequentialSorts.Inc()
		return nil
	}
	mid := from + n/2

	var left, right []int
	halves := [2]func() error{
		func() (err error) {
			left, err = s.task(arr, from, mid)
			return err
		},
		func() (err error) {
			right, err = s.task(arr, mid, to)
			return err
		},
	}

	var g errgroup.Group
	var inline []func() error
	for _, half := range halves {
		if s.pool.TryAcquire() {
			s.asyncTasks.Inc()
			g.Go(func() error {
				defer s.pool.Release()
				return half()
			})
			continue
		}
		// 슬롯 없으면 순차 처리
		s.inlineTasks.Inc()
		inline = append(inline, half)
	}

	var err error
	for _, half := range inline {
		if err = half(); err != nil {
			break
		}
	}
	// 실패했어도 비동기 형제가 끝날 때까지는 기다린다
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		return err
	}

	merged := Merge(left, right)
	copy(arr[from:to], merged)
	s.metrics.Merges.Inc()
	s.metrics.MergeSize.Observe(float64(n))
	return nil
}

// task arr[from:to] 의 사본을 만들어 재귀 정렬한 뒤 돌려준다. 공유 배열에는 쓰지 않는다.
func (s *Sorter) task(arr []int, from, to int) (sorted []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.TaskFailures.Inc()
			err = taskPanicError(r, from, to)
			sorted = nil
			glog.Warningf("parsort: %v", err)
		}
	}()

	buf := s.alloc(to - from)
	copy(buf, arr[from:to])
	if err := s.sortRange(buf, 0, len(buf)); err != nil {
		return nil, err
	}
	return buf, nil
}
