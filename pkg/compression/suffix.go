// Package compression provides transparent stream compression for
// experiment files, collections, and archives. The algorithm is chosen
// by filename suffix, so a library can mix plain and compressed files
// and every reader handles both.
//
// Speed (fastest to slowest): LZ4 > S2 > Zstd > Gzip.
// Compression ratio (best to worst): Zstd > Gzip > S2 > LZ4.
package compression

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies a stream compression algorithm.
type Algorithm string

const (
	// None passes data through uncompressed.
	None Algorithm = "none"
	// Gzip is compress/gzip, recognized by .gz and .gzip suffixes.
	Gzip Algorithm = "gzip"
	// Zstd is recognized by .zst and .zstd suffixes.
	Zstd Algorithm = "zstd"
	// LZ4 is recognized by the .lz4 suffix.
	LZ4 Algorithm = "lz4"
	// S2 is recognized by the .s2 suffix.
	S2 Algorithm = "s2"
)

// DetectAlgorithm maps a filename suffix to its compression algorithm.
// Unknown suffixes map to None, so plain files pass through untouched.
func DetectAlgorithm(path string) Algorithm {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	case ".s2":
		return S2
	default:
		return None
	}
}

// TrimSuffix removes a recognized compression suffix from a path, leaving
// the logical filename. Paths without a recognized suffix are returned
// unchanged.
func TrimSuffix(path string) string {
	if DetectAlgorithm(path) == None {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

type wrappedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (w *wrappedReadCloser) Close() error {
	var firstErr error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenReader opens path for reading, transparently decompressing when
// the filename carries a recognized compression suffix. Closing the
// returned reader closes both the decompressor and the file.
func OpenReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch DetectAlgorithm(path) {
	case Gzip:
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wrappedReadCloser{Reader: gr, closers: []io.Closer{f, gr}}, nil
	case Zstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wrappedReadCloser{Reader: zr.IOReadCloser(), closers: []io.Closer{f}}, nil
	case LZ4:
		return &wrappedReadCloser{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	case S2:
		return &wrappedReadCloser{Reader: s2.NewReader(f), closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

type wrappedWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (w *wrappedWriteCloser) Close() error {
	var firstErr error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CreateWriter creates path for writing, transparently compressing when
// the filename carries a recognized compression suffix. Closing the
// returned writer flushes the compressor before closing the file.
func CreateWriter(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	switch DetectAlgorithm(path) {
	case Gzip:
		gw := gzip.NewWriter(f)
		return &wrappedWriteCloser{Writer: gw, closers: []io.Closer{f, gw}}, nil
	case Zstd:
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wrappedWriteCloser{Writer: zw, closers: []io.Closer{f, zw}}, nil
	case LZ4:
		lw := lz4.NewWriter(f)
		return &wrappedWriteCloser{Writer: lw, closers: []io.Closer{f, lw}}, nil
	case S2:
		sw := s2.NewWriter(f)
		return &wrappedWriteCloser{Writer: sw, closers: []io.Closer{f, sw}}, nil
	default:
		return f, nil
	}
}
