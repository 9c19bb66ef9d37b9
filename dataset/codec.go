package dataset

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
)

// encode 정수들을 varint 로 이어 붙인 뒤 snappy 압축.
// 정렬된/부분 정렬된 데이터는 varint 차이가 작아 잘 압축된다.
func encode(data []int) []byte {
	raw := make([]byte, 0, binary.MaxVarintLen64+len(data)*3)
	raw = binary.AppendUvarint(raw, uint64(len(data)))
	for _, v := range data {
		raw = binary.AppendVarint(raw, int64(v))
	}
	return snappy.Encode(nil, raw)
}

func decode(blob []byte) ([]int, error) {
	raw, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: decompressing")
	}
	n, off := binary.Uvarint(raw)
	if off <= 0 {
		return nil, errors.New("dataset: corrupt length header")
	}
	raw = raw[off:]
	// 원소 하나에 최소 1바이트
	if n > uint64(len(raw)) {
		return nil, errors.Newf("dataset: header claims %d values, only %d bytes left", n, len(raw))
	}
	data := make([]int, n)
	for i := range data {
		v, m := binary.Varint(raw)
		if m <= 0 {
			return nil, errors.Newf("dataset: corrupt value at index %d", i)
		}
		data[i] = int(v)
		raw = raw[m:]
	}
	return data, nil
}
