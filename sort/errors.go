package sort

import "github.com/cockroachdb/errors"

// 정렬 코어에서 반환하는 오류들. errors.Is 로 분류한다.
var (
	// ErrOutOfBounds 0 <= from <= to <= len(arr) 를 만족하지 않는 범위
	ErrOutOfBounds = errors.New("sort: range out of bounds")
	// ErrInvalidCutoff 컷오프는 양수여야 함
	ErrInvalidCutoff = errors.New("sort: cutoff must be positive")
	// ErrInvalidParallelism 워커 풀 크기는 양수여야 함
	ErrInvalidParallelism = errors.New("sort: parallelism must be positive")
	// ErrTaskFailed 비동기 정렬 태스크 실패 (패닉 복구 포함)
	ErrTaskFailed = errors.New("sort: task failed")
)

// checkRange 범위 검사. 실패 시 배열은 건드리지 않는다.
func checkRange(arr []int, from, to int) error {
	if from < 0 || from > to || to > len(arr) {
		return errors.Wrapf(ErrOutOfBounds, "from=%d to=%d len=%d", from, to, len(arr))
	}
	return nil
}

// taskPanicError 복구된 패닉 값을 ErrTaskFailed 로 표시된 오류로 변환
func taskPanicError(r any, from, to int) error {
	if err, ok := r.(error); ok {
		return errors.Mark(errors.Wrapf(err, "sort task [%d, %d) panicked", from, to), ErrTaskFailed)
	}
	return errors.Mark(errors.Newf("sort task [%d, %d) panicked: %v", from, to, r), ErrTaskFailed)
}
