package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Create opens path for writing, compressing by suffix the same way Open
// decompresses. The compressor is flushed before the file is closed.
func Create(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, SuffixGzip):
		gzw := gzip.NewWriter(file)
		return &stackedWriter{Writer: gzw, closers: []io.Closer{gzw, file}}, nil
	case strings.HasSuffix(path, SuffixZstd):
		zw, err := zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create zstd writer for %s: %w", path, err)
		}
		return &stackedWriter{Writer: zw, closers: []io.Closer{zw, file}}, nil
	default:
		return file, nil
	}
}

type stackedWriter struct {
	io.Writer
	closers []io.Closer
}

func (s *stackedWriter) Close() error {
	return (&stackedCloser{closers: s.closers}).Close()
}
