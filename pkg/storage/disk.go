package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// DiskUploader persists uploads under a server-controlled root,
// typically the static assets directory. The returned reference is the
// bare filename; callers build the public path from it.
type DiskUploader struct {
	root string
}

func NewDiskUploader(root string) (*DiskUploader, error) {
	if root == "" {
		return nil, errors.New("upload root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskUploader{root: root}, nil
}

func (u *DiskUploader) UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", errors.New("invalid filename")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(u.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, filename), b, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
