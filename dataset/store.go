// Package dataset 벤치마크 입력 데이터 저장소.
// 같은 데이터 세트를 파일 / bbolt / BadgerDB / PebbleDB 에 저장하고 다시 읽어
// 저장 방식별 로딩 비용을 정렬 벤치마크와 함께 비교한다.
package dataset

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound 이름에 해당하는 데이터 세트 없음
	ErrNotFound = errors.New("dataset: not found")
	// ErrUnknownStore 지원하지 않는 저장소 종류
	ErrUnknownStore = errors.New("dataset: unknown store kind")
	// ErrInvalidName 비어 있거나 경로 구분자가 들어간 이름
	ErrInvalidName = errors.New("dataset: invalid name")
)

// 저장소 종류
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindBolt   = "bbolt"
	KindBadger = "badger"
	KindPebble = "pebble"
)

// Kinds 지원하는 저장소 종류
func Kinds() []string {
	return []string{KindMemory, KindFile, KindBolt, KindBadger, KindPebble}
}

// Store 정수 데이터 세트 저장소
type Store interface {
	Put(name string, data []int) error
	Get(name string) ([]int, error)
	Close() error
	Kind() string
}

// Open kind 저장소를 path 아래에 연다. memory 는 path 를 쓰지 않는다.
func Open(kind, path string) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindFile:
		return OpenFileStore(path)
	case KindBolt:
		return OpenBoltStore(filepath.Join(path, "datasets.bolt"))
	case KindBadger:
		return OpenBadgerStore(path)
	case KindPebble:
		return OpenPebbleStore(path)
	default:
		return nil, errors.Wrapf(ErrUnknownStore, "%q", kind)
	}
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return nil
}

// MemoryStore 인메모리 저장소 (기준선)
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string][]int
}

// NewMemoryStore 빈 인메모리 저장소
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string][]int)}
}

func (s *MemoryStore) Put(name string, data []int) error {
	if err := checkName(name); err != nil {
		return err
	}
	cp := make([]int, len(data))
	copy(cp, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[name] = cp
	return nil
}

func (s *MemoryStore) Get(name string) ([]int, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.sets[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	cp := make([]int, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Kind() string { return KindMemory }

// DirSize path 아래 파일 크기 합계 (path 가 파일이면 그 크기)
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "measuring %s", path)
	}
	return size, nil
}
