package dataset

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
)

// BadgerStore BadgerDB 저장소
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore dir 에 BadgerDB 저장소를 연다
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir).WithLogger(nil))
}

// OpenInMemoryBadgerStore 디스크를 쓰지 않는 BadgerDB (테스트용)
func OpenInMemoryBadgerStore() (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening badger %s", opts.Dir)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Put(name string, data []int) error {
	if err := checkName(name); err != nil {
		return err
	}
	blob := encode(data)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), blob)
	})
	return errors.Wrapf(err, "badger put %q", name)
}

func (s *BadgerStore) Get(name string) ([]int, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "badger get %q", name)
	}
	return decode(blob)
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) Kind() string { return KindBadger }
