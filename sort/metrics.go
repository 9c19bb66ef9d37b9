package sort

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// 태스크 실행 방식 라벨
const (
	modeAsync  = "async"  // 풀 슬롯을 얻어 고루틴에서 실행
	modeInline = "inline" // 풀 포화 시 호출자 고루틴에서 실행
)

// Metrics 정렬 엔진 카운터 모음
type Metrics struct {
	SequentialSorts prometheus.Counter
	Tasks           *prometheus.CounterVec
	Merges          prometheus.Counter
	TaskFailures    prometheus.Counter
	MergeSize       prometheus.Histogram
}

// NewMetrics 메트릭 생성 후 reg 에 등록. reg 가 nil 이면 등록하지 않는다.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		SequentialSorts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parsort",
			Name:      "sequential_sorts_total",
			Help:      "Ranges sorted by the sequential fallback.",
		}),
		Tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parsort",
			Name:      "tasks_total",
			Help:      "Sort tasks dispatched, by execution mode.",
		}, []string{"mode"}),
		Merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parsort",
			Name:      "merges_total",
			Help:      "Completed merge and writeback steps.",
		}),
		TaskFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parsort",
			Name:      "task_failures_total",
			Help:      "Sort tasks that failed.",
		}),
		MergeSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "parsort",
			Name:      "merge_size",
			Help:      "Number of elements produced per merge.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.SequentialSorts, m.Tasks, m.Merges, m.TaskFailures, m.MergeSize} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering parsort metrics")
		}
	}
	return m, nil
}
