package api

import (
	"context"

	"github.com/mdsajjadhossain25/portfolio-backend/storage"
)

// assetResolver turns stored paths into public URLs and removes files that
// committed writes stopped referencing
type assetResolver struct {
	files storage.FileStorage
}

func (a assetResolver) url(path string) string {
	if path == "" || a.files == nil {
		return ""
	}
	return a.files.URL(path)
}

// cleanup deletes orphaned paths after the database change has committed.
// The change stays committed when this fails.
func (a assetResolver) cleanup(ctx context.Context, paths []string) error {
	if a.files == nil {
		return nil
	}
	return storage.DeleteAll(ctx, a.files, paths)
}
