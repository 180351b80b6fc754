// Package charset detects and decodes the character encoding of
// comparison input files.
package charset

import (
	"fmt"
	"io"
	"os"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// sampleSize is the number of leading bytes fed to the detector
const sampleSize = 1024

// DefaultCharset is assumed when detection is ambiguous or fails
const DefaultCharset = "UTF-8"

// Detect reads up to sampleSize bytes from the start of the file and
// returns the best-guess charset name. The detector API accepts only
// the sample and cannot be told whether it covers the whole file, so a
// multi-byte sequence truncated at the window edge is weighed like any
// mid-file sequence. Detection failures on readable files degrade to
// DefaultCharset; open and read failures are returned.
func Detect(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	sample := make([]byte, sampleSize)
	n, err := io.ReadFull(file, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if n == 0 {
		return DefaultCharset, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(sample[:n])
	if err != nil || result == nil || result.Charset == "" {
		return DefaultCharset, nil
	}
	return result.Charset, nil
}

// lookup resolves a charset name to a decoder, defaulting to UTF-8 for
// names the encoding index does not know
func lookup(name string) encoding.Encoding {
	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		return unicode.UTF8
	}
	return enc
}

// NewReader wraps r so that reads yield UTF-8 text decoded from the
// given charset
func NewReader(r io.Reader, name string) io.Reader {
	return lookup(name).NewDecoder().Reader(r)
}

// DecodeBytes decodes raw file content from the given charset to a
// UTF-8 string
func DecodeBytes(data []byte, name string) (string, error) {
	decoded, err := lookup(name).NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
