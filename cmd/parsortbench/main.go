// Command parsortbench 병렬 머지소트 벤치마크.
//
// 데이터 순서 × 크기마다 입력을 생성해 저장소에 넣었다 다시 읽고,
// 순차 정렬 기준선과 (컷오프 × 워커 수) 조합별 병렬 정렬의 평균 시간을 잰다.
//
//	parsortbench -sizes 10000,1000000 -cutoffs auto,1000,50000 -threads 2,8 -storage pebble
//
// 결과는 <out>.md 와 <out>.json 으로 저장된다.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parsort/bench"
	"parsort/datagen"
	"parsort/dataset"
	psort "parsort/sort"
)

var (
	sizesFlag   = flag.String("sizes", "1000,10000,100000,1000000", "Comma-separated input sizes")
	cutoffsFlag = flag.String("cutoffs", "auto,1000,10000", "Comma-separated cutoffs; 'auto' picks one from the input size")
	threadsFlag = flag.String("threads", "", "Comma-separated worker pool sizes (default: number of CPUs)")
	ordersFlag  = flag.String("orders", "random,ordered,reverse,partially-ordered", "Comma-separated input orders")
	runs        = flag.Int("runs", 10, "Timed runs per measurement (warmups are added automatically)")
	storage     = flag.String("storage", dataset.KindMemory, "Where inputs are stored between generation and sorting: memory, file, bbolt, badger, pebble")
	dataDir     = flag.String("data_dir", "parsort-data", "Directory for file/bbolt/badger/pebble storage")
	keepData    = flag.Bool("keep_data", false, "Keep -data_dir after the run")
	out         = flag.String("out", "benchmark_results", "Report path prefix (.md and .json are appended)")
	seed        = flag.Int64("seed", 42, "Seed for input generation")
	metricsAddr = flag.String("metrics_addr", "", "If set, serve Prometheus metrics on this address (e.g. :9090)")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := run(); err != nil {
		glog.Errorf("%+v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := parseConfig()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics, err := psort.NewMetrics(registry)
	if err != nil {
		return err
	}
	if *metricsAddr != "" {
		serveMetrics(*metricsAddr, registry)
	}

	// 저장소를 닫은 뒤에 디렉터리 삭제
	if cfg.storage != dataset.KindMemory && !cfg.keepData {
		defer os.RemoveAll(cfg.dataDir)
	}
	store, err := dataset.Open(cfg.storage, cfg.dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	glog.Infof("parallel merge sort benchmark: sizes=%v cutoffs=%v threads=%v storage=%s runs=%d",
		cfg.sizes, cfg.cutoffs, cfg.threads, cfg.storage, cfg.runs)

	var results []bench.Result
	for _, order := range cfg.orders {
		for _, size := range cfg.sizes {
			rs, err := benchmarkInput(cfg, store, metrics, order, size)
			if err != nil {
				return err
			}
			results = append(results, rs...)
		}
	}

	if cfg.storage != dataset.KindMemory {
		if size, err := dataset.DirSize(cfg.dataDir); err == nil {
			glog.Infof("%s data set footprint: %s", cfg.storage, humanize.Bytes(uint64(size)))
		}
	}
	return writeReports(cfg.out, results)
}

// benchmarkInput 입력 하나에 대해 기준선 + 모든 (워커 수, 컷오프) 조합 측정
func benchmarkInput(cfg benchConfig, store dataset.Store, metrics *psort.Metrics, order datagen.Kind, size int) ([]bench.Result, error) {
	name := fmt.Sprintf("%s-%d", order, size)
	if err := store.Put(name, datagen.Generate(order, size, cfg.seed)); err != nil {
		return nil, err
	}

	// 매번 저장소에서 읽기
	loadStart := time.Now()
	input, err := store.Get(name)
	if err != nil {
		return nil, err
	}
	loadMillis := float64(time.Since(loadStart)) / float64(time.Millisecond)
	glog.Infof("%s: loaded %s values from %s in %.3f ms", name, humanize.Comma(int64(len(input))), store.Kind(), loadMillis)

	base := bench.Result{
		Order:      order.String(),
		DataSize:   size,
		Storage:    store.Kind(),
		LoadMillis: loadMillis,
		Runs:       cfg.runs,
	}

	r := base
	r.Algorithm = bench.AlgorithmSequential
	if err := measure(&r, input, func(xs []int) error {
		return psort.Sequential(xs, 0, len(xs))
	}); err != nil {
		return nil, err
	}
	results := []bench.Result{r}

	for _, threads := range cfg.threads {
		for _, cutoff := range cfg.cutoffs {
			if cutoff == autoCutoff {
				cutoff = psort.SuggestCutoff(size)
			}
			sorter, err := psort.NewSorter(psort.Config{Cutoff: cutoff, Parallelism: threads}, psort.WithMetrics(metrics))
			if err != nil {
				return nil, err
			}

			r := base
			r.Algorithm = "parallel"
			r.Cutoff = cutoff
			r.Parallelism = threads
			if err := measure(&r, input, sorter.SortAll); err != nil {
				return nil, err
			}
			results = append(results, r)
		}
	}
	return results, nil
}

// measure Timer 로 평균 시간, Stats 로 메모리 사용량을 채운다
func measure(r *bench.Result, input []int, fn func([]int) error) error {
	buf := make([]int, len(input))
	timer := bench.Timer[[]int]{
		Description: fmt.Sprintf("%s %s-%d cutoff=%d threads=%d", r.Algorithm, r.Order, r.DataSize, r.Cutoff, r.Parallelism),
		Pre: func(src []int) []int {
			copy(buf, src)
			return buf
		},
		Fn: fn,
		Post: func(xs []int) error {
			if !psort.IsSorted(xs, 0, len(xs)) {
				return errors.New("output is not sorted")
			}
			return nil
		},
	}

	stats := bench.StartStats()
	mean, err := timer.Run(input, r.Runs)
	sample := stats.Stop()
	if err != nil {
		return err
	}

	r.MeanMillis = mean
	r.MemoryUsage = sample.MemoryUsage / uint64(r.Runs+bench.WarmupRuns(r.Runs))
	r.Goroutines = sample.Goroutines
	glog.Infof("  %s: %.3f ms", timer.Description, mean)
	return nil
}

func writeReports(prefix string, results []bench.Result) error {
	md, err := os.Create(prefix + ".md")
	if err != nil {
		return errors.Wrap(err, "creating markdown report")
	}
	defer md.Close()
	if err := bench.WriteMarkdown(md, results, time.Now()); err != nil {
		return err
	}

	js, err := os.Create(prefix + ".json")
	if err != nil {
		return errors.Wrap(err, "creating json report")
	}
	defer js.Close()
	if err := bench.WriteJSON(js, results); err != nil {
		return err
	}

	glog.Infof("wrote %s.md and %s.json (%d results)", prefix, prefix, len(results))
	return nil
}

func serveMetrics(addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			glog.Warningf("metrics server on %s stopped: %v", addr, err)
		}
	}()
	glog.Infof("serving metrics on %s/metrics", addr)
}
