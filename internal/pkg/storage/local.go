package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalOptions configures the filesystem backend.
type LocalOptions struct {
	// Root is the directory buckets are created under. Empty means the
	// working directory, so bucket "qrcodes" maps to ./qrcodes.
	Root string
}

// LocalAdapter implements Storage on the local filesystem. Each bucket is a
// directory under Root and is created on first write.
type LocalAdapter struct {
	root string
}

// NewLocal constructs a filesystem adapter.
func NewLocal(opts LocalOptions) (*LocalAdapter, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &LocalAdapter{root: abs}, nil
}

// PutObject writes r to <root>/<bucket>/<key>. The file is written to a
// temporary name first and renamed into place, so readers never observe a
// partial object.
func (l *LocalAdapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	if !validKey(bucket) || !validKey(key) {
		return ObjectInfo{}, fmt.Errorf("%w: %q/%q", ErrInvalidKey, bucket, key)
	}

	path := filepath.Join(l.root, filepath.FromSlash(bucket), filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ObjectInfo{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return ObjectInfo{}, err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	n, err := io.Copy(tmp, r)
	if err != nil {
		return ObjectInfo{}, errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return ObjectInfo{}, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return ObjectInfo{}, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return ObjectInfo{}, err
	}

	return ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Location:    path,
		Size:        n,
		ContentType: opts.ContentType,
	}, nil
}

// Close implements io.Closer for interface compatibility.
func (l *LocalAdapter) Close() error {
	return nil
}
