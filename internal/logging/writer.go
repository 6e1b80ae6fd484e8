package logging

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

// RotatingWriter implements io.Writer with size-based rotation.
//
// Several feedlens processes may log to the same file; rotation is guarded
// by a sibling .lock file so only one of them renames the chain at a time.
type RotatingWriter struct {
	path     string
	maxSize  int64
	maxFiles int
	lock     *flock.Flock

	mu      sync.Mutex
	file    *os.File
	written int64
}

// NewRotatingWriter creates the directory of path and opens it for appending.
// Non-positive limits fall back to 10 MB and 5 files.
func NewRotatingWriter(path string, maxSizeMB, maxFiles int) (*RotatingWriter, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := &RotatingWriter{
		path:     path,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		maxFiles: maxFiles,
		lock:     flock.New(path + ".lock"),
	}
	if err := w.openFile(); err != nil {
		return nil, err
	}
	return w, nil
}

// Write implements io.Writer, rotating first when p would exceed the limit.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, os.ErrClosed
	}

	if w.written+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			// Keep logging to whatever is open
			_, _ = fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
	}

	n, err := w.file.Write(p)
	w.written += int64(n)
	// Synced per write so `feedlens logs -f` sees records as they happen
	if err == nil {
		_ = w.file.Sync()
	}
	return n, err
}

// Close closes the underlying file. Further writes fail with os.ErrClosed.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// Sync flushes the file to disk.
func (w *RotatingWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

func (w *RotatingWriter) openFile() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	w.file = f
	w.written = info.Size()
	return nil
}

// rotate shifts feedlens.log -> feedlens.log.1 -> ... and drops files past
// maxFiles. When another process holds the lock it has already rotated, so
// the file is reopened instead.
func (w *RotatingWriter) rotate() error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		w.file = nil
	}

	locked, err := w.lock.TryLock()
	if err != nil {
		return w.reopen(fmt.Errorf("failed to lock log file: %w", err))
	}
	if !locked {
		return w.reopen(nil)
	}
	defer func() { _ = w.lock.Unlock() }()

	// Another process may have rotated between our size check and the lock
	if info, err := os.Stat(w.path); err == nil && info.Size() < w.written {
		return w.reopen(nil)
	}

	for _, r := range w.rotated() {
		if r.num >= w.maxFiles {
			_ = os.Remove(r.path)
			continue
		}
		_ = os.Rename(r.path, fmt.Sprintf("%s.%d", w.path, r.num+1))
	}

	if err := os.Rename(w.path, w.path+".1"); err != nil && !os.IsNotExist(err) {
		return w.reopen(fmt.Errorf("failed to rotate log file: %w", err))
	}
	return w.reopen(nil)
}

func (w *RotatingWriter) reopen(cause error) error {
	if err := w.openFile(); err != nil {
		return err
	}
	return cause
}

type rotatedFile struct {
	path string
	num  int
}

// rotated lists numbered siblings of the log, highest number first.
func (w *RotatingWriter) rotated() []rotatedFile {
	base := filepath.Base(w.path)
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(w.path), base+".*"))

	var files []rotatedFile
	for _, m := range matches {
		num, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(m), base+"."))
		if err != nil {
			continue
		}
		files = append(files, rotatedFile{path: m, num: num})
	}
	slices.SortFunc(files, func(a, b rotatedFile) int { return cmp.Compare(b.num, a.num) })
	return files
}
