// Package scratch owns the process-wide temporary directory where one
// request's artifacts (downloaded file, page images, generated report) live
// between download and delivery.
package scratch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const pageSubdir = "pdf_pages"

type Store struct {
	root string
}

// New ensures the scratch root and its page-image subdirectory exist.
// Safe to call repeatedly.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./temp"
	}
	if err := os.MkdirAll(filepath.Join(root, pageSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the scratch root directory.
func (s *Store) Root() string { return s.root }

// Save streams data into a new file under the scratch root and returns its
// path. A partially written file is removed on write failure.
func (s *Store) Save(_ context.Context, key string, data io.Reader) (string, error) {
	if err := s.ensure(s.root); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, key)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close scratch file: %w", err)
	}
	return path, nil
}

// WriteFile writes data to a new file under the scratch root.
func (s *Store) WriteFile(key string, data []byte) (string, error) {
	if err := s.ensure(s.root); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	return path, nil
}

// Remove deletes one artifact. A path that is already gone is not an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove scratch file: %w", err)
	}
	return nil
}

// PageDir returns a per-request directory for rasterized PDF pages, creating
// it if needed. stem is the request-scoped artifact name.
func (s *Store) PageDir(stem string) (string, error) {
	dir := filepath.Join(s.root, pageSubdir, stem)
	if err := s.ensure(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func (s *Store) ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure scratch dir: %w", err)
	}
	return nil
}
