package sort

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

// DefaultCutoff 이보다 짧은 범위는 분할하지 않고 순차 정렬
const DefaultCutoff = 1000

// Config 정렬기 설정. 전역 상태 대신 Sorter 마다 들고 다닌다.
type Config struct {
	// Cutoff 길이가 Cutoff 미만인 범위는 순차 정렬로 처리
	Cutoff int
	// Parallelism 워커 풀 슬롯 수 (동시에 실행되는 비동기 태스크 상한)
	Parallelism int
}

// DefaultConfig 기본 설정: 컷오프 1000, 슬롯은 CPU 코어 수
func DefaultConfig() Config {
	return Config{
		Cutoff:      DefaultCutoff,
		Parallelism: runtime.NumCPU(),
	}
}

// Validate 설정 검사. 정렬 시점이 아니라 생성 시점에 실패시킨다.
func (c Config) Validate() error {
	if c.Cutoff <= 0 {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidCutoff, "cutoff=%d", c.Cutoff),
			"use a cutoff of at least 1; the default is 1000")
	}
	if c.Parallelism <= 0 {
		return errors.Wrapf(ErrInvalidParallelism, "parallelism=%d", c.Parallelism)
	}
	return nil
}

// SuggestCutoff 데이터 크기에 따른 컷오프 추천값.
// 작은 데이터는 병렬처리 안함 (컷오프 = 전체 크기 + 1).
func SuggestCutoff(totalSize int) int {
	switch {
	case totalSize < 1000:
		return totalSize + 1
	case totalSize < 10000:
		return 300
	case totalSize < 100000:
		return 800
	default:
		return 1500
	}
}
