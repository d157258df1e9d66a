// FILE: vislog/src/internal/source/file.go
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/lixenwraith/log"
)

// Compression of an input file, derived from its extension
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// DetectCompression maps a path to the decompressor needed to read it
func DetectCompression(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(path, ".zst"), strings.HasSuffix(path, ".zstd"):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// FileSource reads a log file, decompressing it transparently
type FileSource struct {
	path        string
	compression Compression
	file        *os.File
	reader      io.Reader
	closers     []func() error
	logger      *log.Logger
	startTime   time.Time
	lastRead    time.Time
	bytes       uint64
	chunks      uint64
}

// OpenFile opens path for whole-file reading
func OpenFile(path string, logger *log.Logger) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	fs := &FileSource{
		path:        path,
		compression: DetectCompression(path),
		file:        f,
		reader:      f,
		logger:      logger,
		startTime:   time.Now(),
	}

	switch fs.compression {
	case CompressionGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		fs.reader = zr
		fs.closers = append(fs.closers, zr.Close)
	case CompressionZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open zstd stream %s: %w", path, err)
		}
		rc := zr.IOReadCloser()
		fs.reader = rc
		fs.closers = append(fs.closers, rc.Close)
	}
	fs.closers = append(fs.closers, f.Close)

	logger.Debug("msg", "Opened input file",
		"component", "file_source",
		"path", path,
		"compression", string(fs.compression))
	return fs, nil
}

func (fs *FileSource) Name() string {
	return fs.path
}

// Compression reports the decompressor in use
func (fs *FileSource) Compression() Compression {
	return fs.compression
}

// ReadAll drains the remaining content
func (fs *FileSource) ReadAll() ([]byte, error) {
	data, err := io.ReadAll(fs.reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fs.path, err)
	}
	fs.bytes += uint64(len(data))
	fs.chunks++
	fs.lastRead = time.Now()
	return data, nil
}

func (fs *FileSource) Close() error {
	var errs []error
	for _, c := range fs.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	fs.closers = nil
	return errors.Join(errs...)
}

func (fs *FileSource) GetStats() SourceStats {
	return SourceStats{
		Type:         "file",
		Name:         fs.path,
		TotalBytes:   fs.bytes,
		TotalChunks:  fs.chunks,
		StartTime:    fs.startTime,
		LastReadTime: fs.lastRead,
		Details: map[string]any{
			"compression": string(fs.compression),
		},
	}
}
