package storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Adapter implements Storage using AWS S3.
type S3Adapter struct {
	client *s3.Client
}

// S3Options configures S3 client initialization.
type S3Options struct {
	// Region is the AWS region.
	Region string
	// Endpoint overrides the AWS endpoint.
	Endpoint string
	// AccessKey is the static access key ID.
	AccessKey string
	// SecretKey is the static secret access key.
	SecretKey string
	// SessionToken is the optional session token.
	SessionToken string
	// UsePathStyle forces path-style addressing.
	UsePathStyle bool
}

// LoadAWSConfig resolves an aws.Config from static keys when given, falling
// back to the default credential chain. The SES mail driver shares it.
func LoadAWSConfig(ctx context.Context, region, endpoint, accessKey, secretKey, sessionToken string) (aws.Config, error) {
	cfgOpts := []func(*config.LoadOptions) error{}
	if region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(region))
	} else if endpoint != "" {
		cfgOpts = append(cfgOpts, config.WithRegion("us-east-1"))
	}
	if accessKey != "" || secretKey != "" {
		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken),
		))
	}
	return config.LoadDefaultConfig(ctx, cfgOpts...)
}

// NewS3 constructs an S3 adapter with the provided options.
func NewS3(ctx context.Context, opts S3Options) (*S3Adapter, error) {
	cfg, err := LoadAWSConfig(ctx, opts.Region, opts.Endpoint, opts.AccessKey, opts.SecretKey, opts.SessionToken)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.UsePathStyle
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return &S3Adapter{client: client}, nil
}

// PutObject stores data in S3 and returns metadata.
func (s *S3Adapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if !validKey(key) {
		return ObjectInfo{}, ErrInvalidKey
	}

	input := &s3.PutObjectInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		Body:     r,
		Metadata: opts.Metadata,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.Size > 0 {
		input.ContentLength = aws.Int64(opts.Size)
	}

	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return ObjectInfo{}, err
	}

	return ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Location:    "s3://" + bucket + "/" + key,
		Size:        opts.Size,
		ETag:        aws.ToString(out.ETag),
		ContentType: opts.ContentType,
	}, nil
}

// Close releases the S3 adapter resources.
func (s *S3Adapter) Close() error {
	return nil
}
