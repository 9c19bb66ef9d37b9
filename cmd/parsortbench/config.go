package main

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"parsort/datagen"
	"parsort/dataset"
)

// autoCutoff -cutoffs 에서 크기별 추천 컷오프를 뜻하는 값
const autoCutoff = 0

// benchConfig 플래그에서 읽은 벤치마크 설정
type benchConfig struct {
	sizes    []int
	cutoffs  []int // autoCutoff 포함 가능
	threads  []int
	orders   []datagen.Kind
	runs     int
	storage  string
	dataDir  string
	keepData bool
	out      string
	seed     int64
}

func parseConfig() (benchConfig, error) {
	cfg := benchConfig{
		runs:     *runs,
		storage:  *storage,
		dataDir:  *dataDir,
		keepData: *keepData,
		out:      *out,
		seed:     *seed,
	}
	var err error
	if cfg.sizes, err = parseInts(*sizesFlag); err != nil {
		return cfg, errors.Wrap(err, "-sizes")
	}
	if cfg.cutoffs, err = parseCutoffs(*cutoffsFlag); err != nil {
		return cfg, errors.Wrap(err, "-cutoffs")
	}
	if *threadsFlag == "" {
		cfg.threads = []int{runtime.NumCPU()}
	} else if cfg.threads, err = parseInts(*threadsFlag); err != nil {
		return cfg, errors.Wrap(err, "-threads")
	}
	if cfg.orders, err = parseOrders(*ordersFlag); err != nil {
		return cfg, errors.Wrap(err, "-orders")
	}
	if cfg.runs <= 0 {
		return cfg, errors.Newf("-runs must be positive, got %d", cfg.runs)
	}
	if !isStoreKind(cfg.storage) {
		return cfg, errors.WithHint(
			errors.Wrapf(dataset.ErrUnknownStore, "-storage=%q", cfg.storage),
			"one of: "+strings.Join(dataset.Kinds(), ", "))
	}
	return cfg, nil
}

// parseInts 쉼표로 구분된 양의 정수 목록
func parseInts(s string) ([]int, error) {
	var out []int
	for _, field := range splitList(s) {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q", field)
		}
		if v <= 0 {
			return nil, errors.Newf("%d is not positive", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("empty list")
	}
	return out, nil
}

// parseCutoffs 정수 또는 "auto"
func parseCutoffs(s string) ([]int, error) {
	var out []int
	for _, field := range splitList(s) {
		if strings.EqualFold(field, "auto") {
			out = append(out, autoCutoff)
			continue
		}
		v, err := parseInts(field)
		if err != nil {
			return nil, err
		}
		out = append(out, v...)
	}
	if len(out) == 0 {
		return nil, errors.New("empty list")
	}
	return out, nil
}

func parseOrders(s string) ([]datagen.Kind, error) {
	var out []datagen.Kind
	for _, field := range splitList(s) {
		k, err := datagen.ParseKind(field)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if len(out) == 0 {
		return nil, errors.New("empty list")
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}

func isStoreKind(kind string) bool {
	for _, k := range dataset.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}
