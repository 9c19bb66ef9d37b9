package dataset

import (
	"github.com/cockroachdb/errors"
	"go.etcd.io/bbolt"
)

const bucketName = "datasets"

// BoltStore bbolt 단일 파일 저장소. 데이터 세트는 bucketName 버킷에 저장.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore path 파일에 bbolt 저장소를 열고 버킷 생성
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening bbolt %s", path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating bbolt bucket")
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Put(name string, data []int) error {
	if err := checkName(name); err != nil {
		return err
	}
	blob := encode(data)
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(name), blob)
	})
	return errors.Wrapf(err, "bbolt put %q", name)
}

func (s *BoltStore) Get(name string) ([]int, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	var data []int
	err := s.db.View(func(tx *bbolt.Tx) error {
		// 값은 트랜잭션 안에서만 유효하므로 여기서 디코딩
		blob := tx.Bucket([]byte(bucketName)).Get([]byte(name))
		if blob == nil {
			return errors.Wrapf(ErrNotFound, "%q", name)
		}
		var err error
		data, err = decode(blob)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Kind() string { return KindBolt }
