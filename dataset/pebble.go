package dataset

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// PebbleStore PebbleDB 저장소
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebbleStore dir 에 PebbleDB 저장소를 연다
func OpenPebbleStore(dir string) (*PebbleStore, error) {
	return openPebble(dir, &pebble.Options{})
}

// OpenInMemoryPebbleStore 메모리 파일시스템 위의 PebbleDB (테스트용)
func OpenInMemoryPebbleStore() (*PebbleStore, error) {
	return openPebble("", &pebble.Options{FS: vfs.NewMem()})
}

func openPebble(dir string, opts *pebble.Options) (*PebbleStore, error) {
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening pebble %s", dir)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Put(name string, data []int) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := s.db.Set([]byte(name), encode(data), pebble.Sync)
	return errors.Wrapf(err, "pebble put %q", name)
}

func (s *PebbleStore) Get(name string) ([]int, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	blob, closer, err := s.db.Get([]byte(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "pebble get %q", name)
	}
	defer closer.Close()
	// blob 은 closer.Close 전까지만 유효
	return decode(blob)
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func (s *PebbleStore) Kind() string { return KindPebble }
