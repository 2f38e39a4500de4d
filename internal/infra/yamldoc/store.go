package yamldoc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/o11c/targets/internal/domain"
	"github.com/o11c/targets/internal/ports"
)

// Store reads documents relative to a root directory and memoizes them by file name.
// The cache is append-only and never invalidated.
type Store struct {
	root     string
	readFile func(string) ([]byte, error)

	mu    sync.Mutex
	cache map[string]domain.Document
	reads int
}

type Option func(*Store)

// WithReadFile swaps the file reader (useful for tests).
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.readFile = fn
		}
	}
}

func NewStore(root string, opts ...Option) *Store {
	if root == "" {
		root = "."
	}
	s := &Store{
		root:     filepath.Clean(root),
		readFile: os.ReadFile,
		cache:    map[string]domain.Document{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.DocumentStore = (*Store)(nil)

// LoadDocument returns the parsed document for a slash-separated file name.
func (s *Store) LoadDocument(filename string) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.cache[filename]; ok {
		return doc, nil
	}

	path := s.path(filename)
	b, err := s.readFile(path)
	s.reads++
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.Document{}, &domain.OpError{
			Op:   "yamldoc.load",
			Kind: kind,
			Path: filename,
			Err:  err,
		}
	}

	doc, err := Parse(filename, b)
	if err != nil {
		return domain.Document{}, err
	}

	s.cache[filename] = doc
	return doc, nil
}

// DocumentExists reports whether the document is cached or present on disk.
func (s *Store) DocumentExists(filename string) bool {
	s.mu.Lock()
	_, ok := s.cache[filename]
	s.mu.Unlock()
	if ok {
		return true
	}

	info, err := os.Stat(s.path(filename))
	return err == nil && info.Mode().IsRegular()
}

// Reads is the number of underlying file reads performed so far.
func (s *Store) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *Store) path(filename string) string {
	return filepath.Join(s.root, filepath.FromSlash(filename))
}
