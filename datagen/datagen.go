// Package datagen 벤치마크 입력 데이터 생성.
// 같은 시드면 항상 같은 데이터가 나온다 (재현 가능한 벤치마크).
package datagen

import (
	"math/rand"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnknownKind 알 수 없는 데이터 종류
var ErrUnknownKind = errors.New("datagen: unknown data kind")

// Kind 입력 데이터의 정렬 상태
type Kind int

const (
	Random Kind = iota
	Ordered
	Reverse
	PartiallyOrdered
)

var kindNames = map[Kind]string{
	Random:           "random",
	Ordered:          "ordered",
	Reverse:          "reverse",
	PartiallyOrdered: "partially-ordered",
}

// Kinds 모든 종류 (보고서 순서)
func Kinds() []Kind {
	return []Kind{Random, Ordered, Reverse, PartiallyOrdered}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind 이름 -> Kind. "partial" 도 허용.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "partial" {
		return PartiallyOrdered, nil
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Generate n 개 데이터 생성
//   - Random: [1, 2n) 범위 난수
//   - Ordered: 0..n-1
//   - Reverse: n..1
//   - PartiallyOrdered: 앞 절반은 [0, n) 난수, 뒤 절반은 n/2..n-1 오름차순
func Generate(kind Kind, n int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	data := make([]int, n)

	switch kind {
	case Ordered:
		for i := range data {
			data[i] = i
		}
	case Reverse:
		for i := range data {
			data[i] = n - i
		}
	case PartiallyOrdered:
		half := n / 2
		for i := 0; i < half; i++ {
			data[i] = rng.Intn(n)
		}
		for i := half; i < n; i++ {
			data[i] = i
		}
	default:
		for i := range data {
			data[i] = rng.Intn(2*n-1) + 1
		}
	}
	return data
}
