package sort

// Merge 정렬된 두 슬라이스를 새 슬라이스로 병합.
// 길이는 len(left)+len(right), 같은 값이면 left 쪽이 먼저 나온다.
// 입력은 수정하지 않는다.
func Merge(left, right []int) []int {
	result := make([]int, len(left)+len(right))
	i, j, k := 0, 0, 0

	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			result[k] = left[i]
			i++
		} else {
			result[k] = right[j]
			j++
		}
		k++
	}

	// 남은 요소들 한 번에 복사
	k += copy(result[k:], left[i:])
	copy(result[k:], right[j:])

	return result
}
