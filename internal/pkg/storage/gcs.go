package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSAdapter implements Storage using Google Cloud Storage.
type GCSAdapter struct {
	client *gcs.Client
}

// GCSOptions configures GCS client initialization.
type GCSOptions struct {
	// Client provides an existing GCS client.
	Client *gcs.Client
	// ClientOptions are used when Client is nil. Empty means application
	// default credentials.
	ClientOptions []option.ClientOption
}

// NewGCS constructs a GCS adapter.
func NewGCS(ctx context.Context, opts GCSOptions) (*GCSAdapter, error) {
	if opts.Client != nil {
		return &GCSAdapter{client: opts.Client}, nil
	}

	client, err := gcs.NewClient(ctx, opts.ClientOptions...)
	if err != nil {
		return nil, err
	}

	return &GCSAdapter{client: client}, nil
}

// PutObject stores data in GCS and returns metadata.
func (g *GCSAdapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if !validKey(key) {
		return ObjectInfo{}, ErrInvalidKey
	}

	writer := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	if opts.ContentType != "" {
		writer.ContentType = opts.ContentType
	}
	if len(opts.Metadata) > 0 {
		writer.Metadata = opts.Metadata
	}

	n, err := io.Copy(writer, r)
	if err != nil {
		return ObjectInfo{}, errors.Join(err, writer.Close())
	}
	if err := writer.Close(); err != nil {
		return ObjectInfo{}, err
	}

	info := ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Location:    "gs://" + bucket + "/" + key,
		Size:        n,
		ContentType: opts.ContentType,
	}
	if attrs := writer.Attrs(); attrs != nil {
		info.ETag = attrs.Etag
		info.Size = attrs.Size
	}

	return info, nil
}

// Close closes the GCS client.
func (g *GCSAdapter) Close() error {
	return g.client.Close()
}
