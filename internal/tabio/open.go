// internal/tabio/open.go
package tabio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	filetype "gopkg.in/h2non/filetype.v1"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a whitespace-delimited table file, decompressing transparently
// when the content is gzip (detected by magic number, with the .gz suffix as
// a fallback for short/empty files). "-" reads stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	head := make([]byte, 261)
	n, _ := fh.Read(head)
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	kind, _ := filetype.Match(head[:n])
	if kind.Extension == "gz" || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// NewScanner wraps r in a line scanner sized for very wide table rows.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return sc
}
