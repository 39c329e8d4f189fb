package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/config"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// FileStorage persists uploaded assets. Paths are relative, slash separated
// and stable: they are what the database stores.
type FileStorage interface {
	Store(ctx context.Context, r io.Reader, filename, dir string) (string, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

// New builds the backend selected by cfg.Driver
func New(ctx context.Context, cfg config.Storage) (FileStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicURL)
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// DeleteAll removes paths concurrently. Every failed path is named in the
// returned StorageFailure error.
func DeleteAll(ctx context.Context, fs FileStorage, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	failed := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(4)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			failed[i] = fs.Delete(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	var failedPaths []string
	var firstErr error
	for i, err := range failed {
		if err == nil {
			continue
		}
		failedPaths = append(failedPaths, paths[i])
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		log.Error().Err(firstErr).Strs("paths", failedPaths).Msg("Failed to delete stored files")
		return errs.NewStorageFailureError("delete", failedPaths, firstErr)
	}
	return nil
}

var unsafeSegment = regexp.MustCompile(`[^a-z0-9_-]+`)

// objectPath builds dir/<random>.<ext>. The directory is reduced to safe
// lowercase segments so callers cannot escape the storage root.
func objectPath(filename, dir string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext

	var segments []string
	for _, segment := range strings.Split(strings.ToLower(dir), "/") {
		segment = strings.Trim(unsafeSegment.ReplaceAllString(segment, "-"), "-")
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		segments = []string{"uploads"}
	}
	return path.Join(append(segments, name)...)
}

// cleanPath rejects absolute and parent-relative paths
func cleanPath(p string) (string, error) {
	cleaned := path.Clean(strings.TrimPrefix(strings.TrimSpace(p), "/"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errs.NewFieldValidationError("path", "must stay inside the storage root")
	}
	return cleaned, nil
}

func joinURL(base, p string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}
