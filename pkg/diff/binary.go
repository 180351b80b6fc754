package diff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// BinaryQuick compares files byte-by-byte in process. It is the
// fallback identity check on platforms without a compare utility.
type BinaryQuick struct {
	bufferSize    int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// NewBinaryQuick creates a byte-by-byte quick comparator
func NewBinaryQuick(bufferSize int) *BinaryQuick {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &BinaryQuick{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (q *BinaryQuick) SetReaderWrapper(wrapper ReaderWrapper) {
	q.readerWrapper = wrapper
}

// QuickCompare compares the raw files byte-by-byte, with a size
// pre-check for cheap rejection
func (q *BinaryQuick) QuickCompare(ctx context.Context, path1, path2 string) (QuickResult, error) {
	info1, err := os.Stat(path1)
	if err != nil {
		return Inconclusive, fmt.Errorf("failed to stat %s: %w", path1, err)
	}
	info2, err := os.Stat(path2)
	if err != nil {
		return Inconclusive, fmt.Errorf("failed to stat %s: %w", path2, err)
	}

	if info1.Size() != info2.Size() {
		return Different, nil
	}

	file1, err := os.Open(path1)
	if err != nil {
		return Inconclusive, fmt.Errorf("failed to open %s: %w", path1, err)
	}
	defer file1.Close()

	file2, err := os.Open(path2)
	if err != nil {
		return Inconclusive, fmt.Errorf("failed to open %s: %w", path2, err)
	}
	defer file2.Close()

	var reader1 io.Reader = file1
	var reader2 io.Reader = file2
	if q.readerWrapper != nil {
		reader1 = q.readerWrapper(reader1)
		reader2 = q.readerWrapper(reader2)
	}

	buf1Ptr := q.bufferPool.Get().(*[]byte)
	defer q.bufferPool.Put(buf1Ptr)
	buf1 := *buf1Ptr

	buf2Ptr := q.bufferPool.Get().(*[]byte)
	defer q.bufferPool.Put(buf2Ptr)
	buf2 := *buf2Ptr

	for {
		select {
		case <-ctx.Done():
			return Inconclusive, ctx.Err()
		default:
		}

		n1, err1 := io.ReadFull(reader1, buf1)
		n2, err2 := io.ReadFull(reader2, buf2)

		if n1 != n2 {
			return Different, nil
		}
		if n1 > 0 && !bytes.Equal(buf1[:n1], buf2[:n2]) {
			return Different, nil
		}

		end1 := err1 == io.EOF || err1 == io.ErrUnexpectedEOF
		end2 := err2 == io.EOF || err2 == io.ErrUnexpectedEOF
		if end1 || end2 {
			if end1 && end2 {
				return Identical, nil
			}
			return Different, nil
		}

		if err1 != nil {
			return Inconclusive, fmt.Errorf("failed to read %s: %w", path1, err1)
		}
		if err2 != nil {
			return Inconclusive, fmt.Errorf("failed to read %s: %w", path2, err2)
		}
	}
}

// Name returns the comparator name
func (q *BinaryQuick) Name() string {
	return "binary"
}
