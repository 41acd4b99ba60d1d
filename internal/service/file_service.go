package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrForbidden    = errors.New("path escapes root directory")
)

// File is an open regular file under the served root. Callers must Close it.
type File struct {
	*os.File
	Info fs.FileInfo
}

// FileService resolves request paths to files under a fixed root directory
type FileService struct {
	root string
	dir  *os.Root
}

// NewFileService creates a file service rooted at dir. The root is resolved
// once here and never changes afterwards.
func NewFileService(dir string) (*FileService, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", dir, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", abs, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	r, err := os.OpenRoot(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open root %s: %w", root, err)
	}

	return &FileService{root: root, dir: r}, nil
}

// Root returns the resolved root directory
func (s *FileService) Root() string {
	return s.root
}

// Close releases the root directory handle
func (s *FileService) Close() error {
	return s.dir.Close()
}

// Open opens the regular file at the slash-separated request path name.
// It returns ErrForbidden for paths that leave the root, either through ".."
// segments climbing above it or through symlinks, and ErrFileNotFound for
// anything that is not an existing regular file.
func (s *FileService) Open(ctx context.Context, name string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := cleanPath(name)
	if err != nil {
		return nil, err
	}
	if rel == "." {
		return nil, ErrFileNotFound
	}

	resolved, err := filepath.EvalSymlinks(filepath.Join(s.root, rel))
	if err != nil {
		return nil, classify(name, err)
	}
	if !within(s.root, resolved) {
		return nil, ErrForbidden
	}

	f, err := s.dir.Open(rel)
	if err != nil {
		return nil, classify(name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	// directories are never listed; special files could block on read
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, ErrFileNotFound
	}

	return &File{File: f, Info: info}, nil
}

// cleanPath turns a request path into a clean relative OS path. ".."
// segments are allowed only while they stay below the root.
func cleanPath(name string) (string, error) {
	depth := 0
	for _, seg := range strings.Split(name, "/") {
		switch seg {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return "", ErrForbidden
			}
		default:
			depth++
		}
	}

	rel := strings.TrimPrefix(path.Clean("/"+name), "/")
	if rel == "" {
		return ".", nil
	}
	return filepath.FromSlash(rel), nil
}

func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func classify(name string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, syscall.ENOTDIR),
		errors.Is(err, syscall.ENAMETOOLONG),
		errors.Is(err, syscall.EINVAL):
		return ErrFileNotFound
	default:
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
}
