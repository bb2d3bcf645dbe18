// Package snapshot serializes the process heap profile to timestamped files
// for offline memory-leak analysis.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	apperrors "github.com/agbru/heapwatch/internal/errors"
)

// FileSuffix is the extension carried by every snapshot file.
const FileSuffix = ".heapsnapshot"

// Filename returns the snapshot path for the given directory and wall-clock
// time. The millisecond timestamp keeps concurrent invocations from ever
// colliding on a name.
func Filename(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("heap-%d%s", t.UnixMilli(), FileSuffix))
}

// Writer persists heap profiles to a directory. The zero value is not usable;
// construct with NewWriter.
type Writer struct {
	dir  string
	dump func(w io.Writer) error
}

// NewWriter creates a Writer that stores snapshots under dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, dump: writeHeapProfile}
}

// writeHeapProfile serializes the full heap profile in pprof format.
// The forced GC brings the allocation accounting up to date so the profile
// reflects live objects rather than stale sample buckets.
func writeHeapProfile(w io.Writer) error {
	runtime.GC()
	return pprof.Lookup("heap").WriteTo(w, 0)
}

// Write serializes the heap profile to a file named after now. It returns the
// path of the file it produced. On failure the partial file is removed and a
// SnapshotError carrying the path and cause is returned.
func (w *Writer) Write(now time.Time) (string, error) {
	path := Filename(w.dir, now)
	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.SnapshotError{Path: path, Cause: err}
	}
	if err := w.dump(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", apperrors.SnapshotError{Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return "", apperrors.SnapshotError{Path: path, Cause: err}
	}
	return path, nil
}
