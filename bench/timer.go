// Package bench 반복 가능한 작업의 평균 실행 시간 측정과 결과 보고서.
package bench

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
)

// Timer 한 번의 실행은 세 단계로 나뉜다:
//  1. Pre: 입력 준비 (시계 정지, nil 가능)
//  2. Fn: 측정 대상 (입력을 변경하는 작업)
//  3. Post: 결과 검사/정리 (시계 정지, nil 가능, 워밍업에서는 호출 안 함)
type Timer[T any] struct {
	Description string
	Pre         func(T) T
	Fn          func(T) error
	Post        func(T) error
}

// WarmupRuns m 번 측정 전에 돌릴 워밍업 횟수: 최소 2, 최대 10, 보통 m/10
func WarmupRuns(m int) int {
	return max(2, min(10, m/10))
}

// Run 같은 입력으로 m 번 측정, 평균 밀리초 반환
func (b *Timer[T]) Run(input T, m int) (float64, error) {
	return b.RunFromSupplier(func() T { return input }, m)
}

// RunFromSupplier 매 실행마다 supplier 로 입력을 받아 m 번 측정.
// 워밍업 후 측정한 평균 밀리초를 반환. m <= 0 이면 아무것도 실행하지 않는다.
func (b *Timer[T]) RunFromSupplier(supplier func() T, m int) (float64, error) {
	if m <= 0 {
		return 0, nil
	}
	if b.Fn == nil {
		return 0, errors.Newf("bench: %q has no function to measure", b.Description)
	}
	glog.V(1).Infof("Begin run: %s with %s runs", b.Description, humanize.Comma(int64(m)))

	if _, err := b.repeat(WarmupRuns(m), supplier, false); err != nil {
		return 0, errors.Wrapf(err, "%s: warmup", b.Description)
	}
	mean, err := b.repeat(m, supplier, true)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", b.Description)
	}
	glog.V(1).Infof("End run: %s mean %.3f ms", b.Description, mean)
	return mean, nil
}

func (b *Timer[T]) repeat(n int, supplier func() T, withPost bool) (float64, error) {
	var total time.Duration
	for i := 0; i < n; i++ {
		t := supplier()
		if b.Pre != nil {
			t = b.Pre(t)
		}

		start := time.Now()
		err := b.Fn(t)
		total += time.Since(start)
		if err != nil {
			return 0, errors.Wrapf(err, "run %d", i+1)
		}

		if withPost && b.Post != nil {
			if err := b.Post(t); err != nil {
				return 0, errors.Wrapf(err, "run %d: post", i+1)
			}
		}
	}
	return float64(total) / float64(n) / float64(time.Millisecond), nil
}
