package sort

// insertionThreshold 이 크기 이하는 삽입정렬
const insertionThreshold = 16

// Sequential arr[from:to] 를 제자리에서 오름차순 정렬.
// 병렬 엔진의 기저 케이스와 같은 알고리즘이라 비교 기준(오라클)으로 쓸 수 있다.
func Sequential(arr []int, from, to int) error {
	if err := checkRange(arr, from, to); err != nil {
		return err
	}
	sequentialSort(arr, from, to)
	return nil
}

// sequentialSort 하이브리드 퀵소트 (3-way 파티셔닝 + 삽입정렬), 반열린 구간 [from, to)
func sequentialSort(arr []int, from, to int) {
	if to-from < 2 {
		return
	}
	quickSort(arr, from, to-1)
}

// quickSort 닫힌 구간 [low, high]
func quickSort(arr []int, low, high int) {
	for low < high {
		if high-low+1 <= insertionThreshold {
			insertionSort(arr, low, high)
			return
		}

		lt, gt := partition3Way(arr, low, high)

		// 꼬리 재귀 최적화 (더 작은 부분을 재귀로)
		if lt-low < high-gt {
			quickSort(arr, low, lt-1)
			low = gt + 1
		} else {
			quickSort(arr, gt+1, high)
			high = lt - 1
		}
	}
}

// partition3Way 피벗보다 작은/같은/큰 세 구역으로 분할.
// 반환값 lt, gt: arr[lt..gt] == pivot
func partition3Way(arr []int, low, high int) (int, int) {
	medianOfThree(arr, low, low+(high-low)/2, high)
	pivot := arr[low]

	lt := low      // arr[low..lt-1] < pivot
	i := low + 1   // arr[lt..i-1] == pivot
	gt := high + 1 // arr[gt..high] > pivot

	for i < gt {
		switch {
		case arr[i] < pivot:
			arr[lt], arr[i] = arr[i], arr[lt]
			lt++
			i++
		case arr[i] > pivot:
			gt--
			arr[i], arr[gt] = arr[gt], arr[i]
		default:
			i++
		}
	}

	return lt, gt - 1
}

// medianOfThree 세 값의 중앙값을 arr[a] 로 옮긴다
func medianOfThree(arr []int, a, b, c int) {
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	if arr[b] > arr[c] {
		arr[b], arr[c] = arr[c], arr[b]
	}
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	arr[a], arr[b] = arr[b], arr[a]
}

func insertionSort(arr []int, low, high int) {
	for i := low + 1; i <= high; i++ {
		key := arr[i]
		j := i - 1
		for j >= low && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}

// IsSorted arr[from:to] 가 오름차순인지 확인. 범위가 잘못되면 false.
func IsSorted(arr []int, from, to int) bool {
	if checkRange(arr, from, to) != nil {
		return false
	}
	for i := from + 1; i < to; i++ {
		if arr[i] < arr[i-1] {
			return false
		}
	}
	return true
}
