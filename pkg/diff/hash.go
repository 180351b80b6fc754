package diff

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sync"
)

// HashQuick compares files by their SHA-256 hashes, computed in
// parallel for both sides
type HashQuick struct {
	bufferSize    int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// NewHashQuick creates a hash-based quick comparator
func NewHashQuick(bufferSize int) *HashQuick {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &HashQuick{
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
func (q *HashQuick) SetReaderWrapper(wrapper ReaderWrapper) {
	q.readerWrapper = wrapper
}

// QuickCompare hashes both raw files and compares the digests. Sizes
// are checked first for cheap rejection.
func (q *HashQuick) QuickCompare(ctx context.Context, path1, path2 string) (QuickResult, error) {
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

	var hash1, hash2 string
	var err1, err2 error
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		hash1, err1 = q.computeHash(ctx, path1)
	}()
	go func() {
		defer wg.Done()
		hash2, err2 = q.computeHash(ctx, path2)
	}()
	wg.Wait()

	if err1 != nil {
		return Inconclusive, err1
	}
	if err2 != nil {
		return Inconclusive, err2
	}

	if hash1 == hash2 {
		return Identical, nil
	}
	return Different, nil
}

// computeHash computes the SHA-256 hash of a file using streaming reads
func (q *HashQuick) computeHash(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if q.readerWrapper != nil {
		reader = q.readerWrapper(reader)
	}

	hasher := sha256.New()

	bufPtr := q.bufferPool.Get().(*[]byte)
	defer q.bufferPool.Put(bufPtr)
	buf := *bufPtr

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

// Name returns the comparator name
func (q *HashQuick) Name() string {
	return "hash"
}
