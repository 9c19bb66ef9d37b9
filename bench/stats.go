package bench

import (
	"runtime"
	"time"
)

// Stats 측정 구간의 시간/메모리 통계
type Stats struct {
	startTime time.Time
	startMem  runtime.MemStats
}

// Sample 측정 결과
type Sample struct {
	Duration    time.Duration
	MemoryUsage uint64 // 구간 동안 할당된 바이트
	Mallocs     uint64
	Goroutines  int
}

// StartStats GC 후 측정 시작
func StartStats() *Stats {
	runtime.GC()
	runtime.GC() // 두 번 실행으로 더 정확한 측정

	s := &Stats{}
	runtime.ReadMemStats(&s.startMem)
	s.startTime = time.Now()
	return s
}

// Stop 측정 종료
func (s *Stats) Stop() Sample {
	duration := time.Since(s.startTime)
	goroutines := runtime.NumGoroutine()

	var end runtime.MemStats
	runtime.ReadMemStats(&end)

	return Sample{
		Duration:    duration,
		MemoryUsage: end.TotalAlloc - s.startMem.TotalAlloc,
		Mallocs:     end.Mallocs - s.startMem.Mallocs,
		Goroutines:  goroutines,
	}
}
