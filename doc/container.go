package doc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
)

// FileHandle identifies a stream inside a container.
type FileHandle int

// Stream is a random-access view of one container stream.
type Stream interface {
	io.ReaderAt
	Size() int64
	Close() error
}

// Container gives access to the named streams of a compound file.
type Container interface {
	FindFile(dir, name string) (FileHandle, bool)
	OpenFile(h FileHandle) (Stream, error)
}

// Stream names used by binary Word documents.
const (
	StreamWordDocument = "WordDocument"
	Stream0Table       = "0Table"
	Stream1Table       = "1Table"
	StreamData         = "Data"
	DirObjectPool      = "ObjectPool"
)

// readStream reads a whole stream. A short read is a structural error.
func readStream(c Container, name string, required bool) ([]byte, error) {
	h, ok := c.FindFile("", name)
	if !ok {
		if required {
			return nil, corrupt(CodeMissingStream, "stream %q not found", name)
		}
		return nil, nil
	}
	s, err := c.OpenFile(h)
	if err != nil {
		return nil, wrapCorrupt(CodeMissingStream, err, "open %q", name)
	}
	defer s.Close()

	buf := make([]byte, s.Size())
	n, err := s.ReadAt(buf, 0)
	if n < len(buf) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, wrapCorrupt(CodeShortRead, err, "read %q: %d of %d bytes", name, n, len(buf))
	}
	return buf, nil
}

// MemContainer is a Container over streams already held in memory. Names may
// carry a directory prefix separated by "/".
type MemContainer struct {
	mu      sync.Mutex
	names   []string
	streams [][]byte
	open    int
}

// NewMemContainer returns a container holding the given streams.
func NewMemContainer(streams map[string][]byte) *MemContainer {
	c := &MemContainer{}
	for name, b := range streams {
		c.names = append(c.names, name)
		c.streams = append(c.streams, b)
	}
	return c
}

func (c *MemContainer) FindFile(dir, name string) (FileHandle, bool) {
	full := name
	if dir != "" {
		full = dir + "/" + name
	}
	for i, n := range c.names {
		if n == full {
			return FileHandle(i), true
		}
	}
	return 0, false
}

func (c *MemContainer) OpenFile(h FileHandle) (Stream, error) {
	if int(h) < 0 || int(h) >= len(c.streams) {
		return nil, fmt.Errorf("invalid file handle %d", h)
	}
	c.mu.Lock()
	c.open++
	c.mu.Unlock()
	return &memStream{Reader: bytes.NewReader(c.streams[h]), owner: c}, nil
}

// OpenStreams returns the number of streams opened and not yet closed.
func (c *MemContainer) OpenStreams() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

type memStream struct {
	*bytes.Reader
	owner  *MemContainer
	closed bool
}

func (s *memStream) Close() error {
	if s.closed {
		return errors.New("stream already closed")
	}
	s.closed = true
	s.owner.mu.Lock()
	s.owner.open--
	s.owner.mu.Unlock()
	return nil
}
