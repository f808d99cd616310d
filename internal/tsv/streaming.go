package tsv

// streaming.go provides the readers that sit between a dataset file and the
// TSV parser:
//
//   - BOMSkippingReader: Removes a UTF-8 BOM (0xEF 0xBB 0xBF) from the start
//   - CountingReader: Tracks bytes read for progress reporting
//
// Invalid UTF-8 is repaired per field by the Reader, not here, so the
// byte counts reported by CountingReader match the file on disk.

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
type BOMSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{r: bufio.NewReader(r)}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head, err := b.r.Peek(len(utf8BOM))
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return 0, err
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := b.r.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
	Total     int64 // If known (0 if unknown)
}

// NewCountingReader creates a counting reader with optional total size.
func NewCountingReader(r io.Reader, total int64) *CountingReader {
	return &CountingReader{reader: r, Total: total}
}

// Read implements io.Reader.
func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.BytesRead += int64(n)
	return n, err
}

// Progress returns the read progress as a percentage (0-100).
// Returns 0 if total is unknown.
func (c *CountingReader) Progress() int {
	if c.Total <= 0 {
		return 0
	}
	pct := int(c.BytesRead * 100 / c.Total)
	if pct > 100 {
		return 100
	}
	return pct
}

// wrapForStreaming counts raw file bytes and strips the BOM.
// Counting sits closest to the file so progress reflects on-disk size.
func wrapForStreaming(r io.Reader, totalSize int64) (*CountingReader, io.Reader) {
	counter := NewCountingReader(r, totalSize)
	return counter, NewBOMSkippingReader(counter)
}
