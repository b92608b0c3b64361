// Package ole exposes the streams of an OLE2 compound file (the container of
// legacy Office documents) through the doc.Container interface.
package ole

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/richardlehane/mscfb"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/doc"
)

// ErrClosed is returned when a closed file is used.
var ErrClosed = errors.New("ole: file is closed")

// Entry describes one directory entry of the compound file.
type Entry struct {
	Path    string // parent storages joined by "/", "" at the root
	Name    string
	Size    int64
	Storage bool
}

// File is an open compound file. It stays usable for reading until it and
// every stream opened from it are closed.
type File struct {
	mu      sync.Mutex
	log     *zap.Logger
	closer  io.Closer
	entries []*mscfb.File
	refs    int
	closed  bool
}

// Open opens the compound file at path.
func Open(path string, log *zap.Logger) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	cf, err := New(f, f, log)
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	return cf, nil
}

// New reads the directory of the compound file in ra. closer, which may be
// nil, is closed once the file and all its streams are closed.
func New(ra io.ReaderAt, closer io.Closer, log *zap.Logger) (*File, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("ole: %w", err)
	}
	f := &File{log: log.Named("ole"), closer: closer, refs: 1}
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ole: reading directory: %w", err)
		}
		f.entries = append(f.entries, e)
	}
	f.log.Debug("Compound file opened", zap.Int("entries", len(f.entries)))
	return f, nil
}

func entryPath(e *mscfb.File) string { return strings.Join(e.Path, "/") }

// Entries lists the directory entries in directory order.
func (f *File) Entries() []Entry {
	out := make([]Entry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, Entry{
			Path:    entryPath(e),
			Name:    e.Name,
			Size:    e.Size,
			Storage: e.FileInfo().IsDir(),
		})
	}
	return out
}

// FindFile looks up the stream name inside storage dir ("" for the root).
func (f *File) FindFile(dir, name string) (doc.FileHandle, bool) {
	for i, e := range f.entries {
		if e.Name == name && entryPath(e) == dir && !e.FileInfo().IsDir() {
			return doc.FileHandle(i), true
		}
	}
	return 0, false
}

// OpenFile opens the stream behind h. The stream holds a reference on f.
func (f *File) OpenFile(h doc.FileHandle) (doc.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	if int(h) < 0 || int(h) >= len(f.entries) {
		return nil, fmt.Errorf("ole: invalid file handle %d", h)
	}
	f.refs++
	return &stream{owner: f, entry: f.entries[h]}, nil
}

// Close drops the caller's reference. The underlying reader is closed when
// the last open stream is closed too.
func (f *File) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.closed = true
	if f.refs > 1 {
		f.log.Debug("Closing with open streams", zap.Int("streams", f.refs-1))
	}
	f.mu.Unlock()
	return f.release()
}

func (f *File) release() error {
	f.mu.Lock()
	f.refs--
	last := f.refs == 0
	f.mu.Unlock()
	if last && f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// OpenStreams returns the number of streams not yet closed.
func (f *File) OpenStreams() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return f.refs
	}
	return f.refs - 1
}

type stream struct {
	mu     sync.Mutex
	owner  *File
	entry  *mscfb.File
	closed bool
}

func (s *stream) ReadAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.entry.ReadAt(p, off)
}

func (s *stream) Size() int64 { return s.entry.Size }

func (s *stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	s.mu.Unlock()
	return s.owner.release()
}
