// Package storage persists generated and uploaded files behind a single
// put-only contract, so the registration flow does not care whether bytes
// land on local disk or in an object store.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for empty keys or keys that escape their bucket.
var ErrInvalidKey = errors.New("storage: invalid object key")

// Storage defines object storage operations.
type Storage interface {
	io.Closer

	// PutObject stores data under bucket/key, replacing any existing object,
	// and returns object metadata.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
}

// PutOptions configures upload behavior.
type PutOptions struct {
	// Size is the expected content length; -1 or 0 when unknown.
	Size int64
	// ContentType is the MIME type for the object.
	ContentType string
	// Metadata includes custom key/value metadata.
	Metadata map[string]string
}

// ObjectInfo describes object metadata.
type ObjectInfo struct {
	// Bucket is the bucket name.
	Bucket string
	// Key is the object key.
	Key string
	// Location is a driver-specific reference: a filesystem path for the
	// local driver, otherwise a scheme://bucket/key URI.
	Location string
	// Size is the object size in bytes.
	Size int64
	// ETag is the object ETag when provided.
	ETag string
	// ContentType is the object MIME type.
	ContentType string
}
