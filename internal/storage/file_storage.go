package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge   = errors.New("file too large")
	ErrUnsupportedExt = errors.New("unsupported file type")
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// Store saves uploaded item images and payment proofs under a base
// directory and hands back opaque references. The workflow never looks
// inside the blobs.
type Store struct {
	baseDir string
	maxSize int64
}

func NewStore(baseDir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{baseDir: baseDir, maxSize: maxSize}, nil
}

// Save writes the uploaded file under a random name and returns its
// reference path (relative to the public /uploads mount).
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(s.baseDir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Remove deletes a previously stored file by its reference. Missing files
// are not an error.
func (s *Store) Remove(ref string) error {
	name := filepath.Base(ref)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the base directory, for mounting as a static route.
func (s *Store) Dir() string {
	return s.baseDir
}
