package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
)

// AlgorithmSequential 순차 정렬 기준선 이름. 속도 향상 비율의 분모.
const AlgorithmSequential = "sequential"

// Result 벤치마크 결과 한 행
type Result struct {
	Algorithm   string  `json:"algorithm"`
	Order       string  `json:"order"`
	DataSize    int     `json:"data_size"`
	Cutoff      int     `json:"cutoff,omitempty"`
	Parallelism int     `json:"parallelism,omitempty"`
	Storage     string  `json:"storage_type"`
	LoadMillis  float64 `json:"load_ms"`
	Runs        int     `json:"runs"`
	MeanMillis  float64 `json:"mean_ms"`
	MemoryUsage uint64  `json:"memory_usage_bytes"`
	Goroutines  int     `json:"goroutine_num"`
}

type groupKey struct {
	order string
	size  int
}

// WriteMarkdown 순서/크기별 표. 같은 그룹의 순차 정렬 대비 속도 향상 비율을 함께 쓴다.
func WriteMarkdown(w io.Writer, results []Result, now time.Time) error {
	writer := bufio.NewWriterSize(w, 32*1024)

	fmt.Fprintf(writer, "# Parallel merge sort benchmark\n\n")
	fmt.Fprintf(writer, "Run at: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "CPU cores: %d\n", runtime.NumCPU())
	fmt.Fprintf(writer, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))

	// 처음 등장한 순서대로 그룹화
	var keys []groupKey
	groups := make(map[groupKey][]Result)
	for _, r := range results {
		k := groupKey{r.Order, r.DataSize}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}

	for _, k := range keys {
		rows := groups[k]
		baseline := 0.0
		for _, r := range rows {
			if r.Algorithm == AlgorithmSequential {
				baseline = r.MeanMillis
				break
			}
		}

		fmt.Fprintf(writer, "## %s - %s elements\n\n", k.order, humanize.Comma(int64(k.size)))
		fmt.Fprintf(writer, "| algorithm | storage | load | cutoff | threads | mean | speed-up | memory | goroutines |\n")
		fmt.Fprintf(writer, "|-----------|---------|------|--------|---------|------|----------|--------|------------|\n")
		for _, r := range rows {
			speedup := "-"
			if baseline > 0 && r.MeanMillis > 0 {
				speedup = fmt.Sprintf("%.2fx", baseline/r.MeanMillis)
			}
			fmt.Fprintf(writer, "| %s | %s | %.3f ms | %s | %s | %.3f ms | %s | %s | %d |\n",
				r.Algorithm, r.Storage, r.LoadMillis, optional(r.Cutoff), optional(r.Parallelism),
				r.MeanMillis, speedup, humanize.Bytes(r.MemoryUsage), r.Goroutines)
		}
		fmt.Fprintln(writer)
	}

	return errors.Wrap(writer.Flush(), "writing markdown report")
}

func optional(v int) string {
	if v == 0 {
		return "-"
	}
	return humanize.Comma(int64(v))
}

// WriteJSON 들여쓰기 된 JSON 배열
func WriteJSON(w io.Writer, results []Result) error {
	writer := bufio.NewWriterSize(w, 32*1024)

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return errors.Wrap(err, "encoding json report")
	}
	return errors.Wrap(writer.Flush(), "writing json report")
}
