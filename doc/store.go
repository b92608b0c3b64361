package doc

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// Handle identifies an open document in a Store. Valid handles start at 1.
type Handle int

// Store is a host-owned table of open documents.
type Store struct {
	mu   sync.Mutex
	docs []*Document
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Open decodes the document in c and returns its handle.
func (s *Store) Open(c Container, opts ...Option) (Handle, error) {
	d, err := Open(c, opts...)
	if err != nil {
		return 0, err
	}
	return s.Add(d), nil
}

// Add stores d, reusing the first free slot.
func (s *Store) Add(d *Document) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, slot := range s.docs {
		if slot == nil {
			s.docs[i] = d
			return Handle(i + 1)
		}
	}
	s.docs = append(s.docs, d)
	return Handle(len(s.docs))
}

// Get returns the document behind h.
func (s *Store) Get(h Handle) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h < 1 || int(h) > len(s.docs) || s.docs[h-1] == nil {
		return nil, fmt.Errorf("doc: invalid document handle %d", h)
	}
	return s.docs[h-1], nil
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, d := range s.docs {
		if d != nil {
			n++
		}
	}
	return n
}

// Close closes the document behind h and frees its handle.
func (s *Store) Close(h Handle) error {
	d, err := s.Get(h)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[h-1] = nil
	s.mu.Unlock()
	return d.Close()
}

// CloseAll closes every open document.
func (s *Store) CloseAll() error {
	s.mu.Lock()
	docs := s.docs
	s.docs = nil
	s.mu.Unlock()

	var err error
	for _, d := range docs {
		if d != nil {
			err = multierr.Append(err, d.Close())
		}
	}
	return err
}
