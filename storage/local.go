package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mdsajjadhossain25/portfolio-backend/errs"
)

// LocalStorage keeps files on disk under root and serves them from publicURL
type LocalStorage struct {
	root      string
	publicURL string
}

func NewLocalStorage(root, publicURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errs.NewStorageFailureError("create", []string{root}, err)
	}
	return &LocalStorage{root: root, publicURL: publicURL}, nil
}

// Root is the directory files are written to
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) Store(ctx context.Context, r io.Reader, filename, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := objectPath(filename, dir)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", errs.NewStorageFailureError("store", []string{rel}, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", errs.NewStorageFailureError("store", []string{rel}, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", errs.NewStorageFailureError("store", []string{rel}, err)
	}
	if err := f.Close(); err != nil {
		return "", errs.NewStorageFailureError("store", []string{rel}, err)
	}
	return rel, nil
}

// Delete removes the file at p. A file that is already gone is not an error.
func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	rel, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errs.NewStorageFailureError("delete", []string{rel}, err)
	}
	return nil
}

func (s *LocalStorage) URL(p string) string {
	if p == "" {
		return ""
	}
	return joinURL(s.publicURL, p)
}
