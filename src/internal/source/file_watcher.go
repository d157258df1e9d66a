// FILE: vislog/src/internal/source/file_watcher.go
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lixenwraith/log"
)

// Fallback wake-up for filesystems that do not deliver notifications
const followPollInterval = 250 * time.Millisecond

// WatcherInfo contains information about a followed file
type WatcherInfo struct {
	Path      string
	Size      int64
	Position  int64
	Rotations int
}

// FollowSource reads a plain file from the start and keeps returning data
// appended to it until the context is cancelled or the file is renamed away.
type FollowSource struct {
	path      string
	file      *os.File
	inode     uint64
	size      int64
	position  int64
	rotations int
	watcher   *fsnotify.Watcher
	buf       []byte
	logger    *log.Logger
	startTime time.Time
	lastRead  time.Time
	bytes     uint64
	chunks    uint64
}

// NewFollowSource opens path and registers it with fsnotify
func NewFollowSource(path string, chunkSize int64, logger *log.Logger) (*FollowSource, error) {
	if chunkSize <= 0 {
		return nil, errors.New("chunk size must be positive")
	}
	if c := DetectCompression(path); c != CompressionNone {
		return nil, fmt.Errorf("cannot follow %s compressed file %s", c, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		f.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &FollowSource{
		path:      path,
		file:      f,
		watcher:   watcher,
		buf:       make([]byte, chunkSize),
		logger:    logger,
		startTime: time.Now(),
	}
	if info, err := f.Stat(); err == nil {
		w.size = info.Size()
		w.inode = inodeOf(info)
	}

	logger.Info("msg", "Following file",
		"component", "file_watcher",
		"path", path)
	return w, nil
}

func (w *FollowSource) Name() string {
	return w.path
}

// Next returns existing content first, then waits for appended data. After
// a truncation or replacement it returns ErrRotated once before reading the
// new content from the start.
func (w *FollowSource) Next(ctx context.Context) ([]byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := w.file.Read(w.buf)
		if n > 0 {
			w.position += int64(n)
			w.bytes += uint64(n)
			w.chunks++
			w.lastRead = time.Now()
			return w.buf[:n], nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read %s: %w", w.path, err)
		}

		rotated, err := w.checkFile()
		if err != nil {
			return nil, err
		}
		if rotated {
			return nil, ErrRotated
		}

		if done, err := w.wait(ctx); done || err != nil {
			return nil, err
		}
	}
}

// wait blocks until the file may have changed. done is set when following
// should stop.
func (w *FollowSource) wait(ctx context.Context) (done bool, err error) {
	timer := time.NewTimer(followPollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return true, ctx.Err()
	case ev, ok := <-w.watcher.Events:
		if !ok {
			return true, io.EOF
		}
		if ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
			w.logger.Info("msg", "Followed file moved away, stopping",
				"component", "file_watcher",
				"path", w.path,
				"op", ev.Op.String())
			return true, io.EOF
		}
	case err, ok := <-w.watcher.Errors:
		if !ok {
			return true, io.EOF
		}
		w.logger.Warn("msg", "File watcher error",
			"component", "file_watcher",
			"path", w.path,
			"error", err)
	case <-timer.C:
	}
	return false, nil
}

// checkFile detects truncation and replacement of the followed file and
// restarts reading from the beginning when either happened.
func (w *FollowSource) checkFile() (bool, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Between rotation steps, keep the old handle
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", w.path, err)
	}

	currentSize := info.Size()
	currentInode := inodeOf(info)

	reason := ""
	switch {
	case w.inode != 0 && currentInode != 0 && currentInode != w.inode:
		reason = "inode change"
	case currentSize < w.position:
		reason = "size decrease"
	}
	w.size = currentSize
	if reason == "" {
		return false, nil
	}

	if currentInode != w.inode {
		f, err := os.Open(w.path)
		if err != nil {
			return false, fmt.Errorf("failed to reopen %s: %w", w.path, err)
		}
		w.file.Close()
		w.file = f
		w.inode = currentInode
	} else if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("failed to rewind %s: %w", w.path, err)
	}

	w.position = 0
	w.rotations++
	w.logger.Info("msg", "Log rotation detected",
		"component", "file_watcher",
		"path", w.path,
		"sequence", w.rotations,
		"reason", reason)
	return true, nil
}

func (w *FollowSource) Close() error {
	return errors.Join(w.watcher.Close(), w.file.Close())
}

func (w *FollowSource) GetStats() SourceStats {
	info := w.getInfo()
	return SourceStats{
		Type:         "follow",
		Name:         w.path,
		TotalBytes:   w.bytes,
		TotalChunks:  w.chunks,
		StartTime:    w.startTime,
		LastReadTime: w.lastRead,
		Details: map[string]any{
			"size":      info.Size,
			"position":  info.Position,
			"rotations": info.Rotations,
		},
	}
}

func (w *FollowSource) getInfo() WatcherInfo {
	return WatcherInfo{
		Path:      w.path,
		Size:      w.size,
		Position:  w.position,
		Rotations: w.rotations,
	}
}

func inodeOf(info os.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Ino)
	}
	return 0
}
