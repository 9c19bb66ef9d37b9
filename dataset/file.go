package dataset

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// FileStore 데이터 세트 하나당 텍스트 파일 하나 (한 줄에 숫자 하나)
type FileStore struct {
	dir string
}

// OpenFileStore dir 를 만들고 파일 저장소로 사용
func OpenFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

// Put 큰 버퍼로 한 번에 쓰기
func (s *FileStore) Put(name string, data []int) error {
	if err := checkName(name); err != nil {
		return err
	}
	file, err := os.Create(s.path(name))
	if err != nil {
		return errors.Wrapf(err, "creating dataset %q", name)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 64*1024)

	var builder strings.Builder
	builder.Grow(64 * 1024)
	for i, num := range data {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(strconv.Itoa(num))

		// 주기적으로 플러시 (메모리 사용량 제어)
		if builder.Len() >= 60*1024 {
			if _, err := writer.WriteString(builder.String()); err != nil {
				return errors.Wrapf(err, "writing dataset %q", name)
			}
			builder.Reset()
		}
	}
	if _, err := writer.WriteString(builder.String()); err != nil {
		return errors.Wrapf(err, "writing dataset %q", name)
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "flushing dataset %q", name)
	}
	return file.Close()
}

func (s *FileStore) Get(name string) ([]int, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	file, err := os.Open(s.path(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening dataset %q", name)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat dataset %q", name)
	}

	// 대략적인 숫자 개수 추정 (평균 6자리 + 개행)
	data := make([]int, 0, int(fileInfo.Size()/7))

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		num, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset %q line %d", name, line)
		}
		data = append(data, num)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading dataset %q", name)
	}
	return data, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) Kind() string { return KindFile }
