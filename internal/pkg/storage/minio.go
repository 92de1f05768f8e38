package storage

import (
	"context"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOAdapter implements Storage using MinIO.
type MinIOAdapter struct {
	client       *minio.Client
	region       string
	createBucket bool
	ensured      sync.Map
}

// MinIOOptions configures MinIO client initialization.
type MinIOOptions struct {
	// Endpoint is the MinIO server address.
	Endpoint string
	// AccessKey is the access key ID.
	AccessKey string
	// SecretKey is the secret access key.
	SecretKey string
	// SessionToken is the optional session token.
	SessionToken string
	// Region is the MinIO region.
	Region string
	// UseSSL toggles TLS for MinIO connections.
	UseSSL bool
	// CreateBuckets makes the first write to a bucket create it when missing.
	CreateBuckets bool
}

// NewMinIO constructs a MinIO adapter with the provided options.
func NewMinIO(opts MinIOOptions) (*MinIOAdapter, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}

	return &MinIOAdapter{client: client, region: opts.Region, createBucket: opts.CreateBuckets}, nil
}

// PutObject stores data in MinIO and returns metadata.
func (m *MinIOAdapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if !validKey(key) {
		return ObjectInfo{}, ErrInvalidKey
	}
	if err := m.ensureBucket(ctx, bucket); err != nil {
		return ObjectInfo{}, err
	}

	size := opts.Size
	if size <= 0 {
		size = -1
	}

	info, err := m.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, err
	}

	return ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Location:    "minio://" + bucket + "/" + key,
		Size:        info.Size,
		ETag:        info.ETag,
		ContentType: opts.ContentType,
	}, nil
}

func (m *MinIOAdapter) ensureBucket(ctx context.Context, bucket string) error {
	if !m.createBucket {
		return nil
	}
	if _, ok := m.ensured.Load(bucket); ok {
		return nil
	}

	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
			return err
		}
	}

	m.ensured.Store(bucket, struct{}{})
	return nil
}

// Close releases MinIO adapter resources.
func (m *MinIOAdapter) Close() error {
	return nil
}
