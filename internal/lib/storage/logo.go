// Package storage keeps uploaded company logos on the local filesystem.
//
// Uploads are identified by their content, not by the client's file name
// or Content-Type header: only PNG and JPEG images are accepted.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("logo not found")
	ErrTooLarge        = errors.New("logo exceeds the maximum size")
	ErrUnsupportedType = errors.New("logo must be a PNG or JPEG image")
)

var allowedLogoTypes = []string{"image/png", "image/jpeg"}

type LogoStore struct {
	dir     string
	maxSize int64
}

// NewLogoStore creates dir when needed and returns a store writing into it.
func NewLogoStore(dir string, maxSize int64) (*LogoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create logo directory: %w", err)
	}
	return &LogoStore{dir: dir, maxSize: maxSize}, nil
}

// Save writes the image read from r and returns the generated file name,
// "<companyID>_<uuid>.<ext>".
func (s *LogoStore) Save(companyID int64, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedLogoTypes...) {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("%d_%s%s", companyID, uuid.NewString(), mtype.Extension())

	// Write under a temporary name so a reader never sees a partial file.
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create logo file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write logo file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close logo file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod logo file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("store logo file: %w", err)
	}

	return name, nil
}

// Open returns the content and media type of a stored logo.
func (s *LogoStore) Open(name string) ([]byte, string, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("read logo file: %w", err)
	}

	return data, mimetype.Detect(data).String(), nil
}

// Remove deletes a stored logo. A missing file is not an error.
func (s *LogoStore) Remove(name string) error {
	path, err := s.path(name)
	if err != nil {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove logo file: %w", err)
	}
	return nil
}

// path resolves name inside the store directory, refusing anything that
// is not a plain file name.
func (s *LogoStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, name), nil
}
