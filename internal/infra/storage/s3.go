package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"

	"github.com/aircooling/backoffice/internal/config"
)

// Uploader stores objects and returns their key.
type Uploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

type S3Uploader struct {
	client *s3.Client
	bucket string
}

// NewS3Uploader targets any S3-compatible endpoint (the platform's storage
// API by default). Path-style addressing is used whenever an endpoint is
// set.
func NewS3Uploader(cfg *config.Config) *S3Uploader {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Uploader{
		client: s3.New(opts),
		bucket: cfg.S3Bucket,
	}
}

func (u *S3Uploader) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// PlanKey builds plans/yyyy/mm/<ulid>.webp.
func PlanKey(now time.Time) string {
	return fmt.Sprintf("plans/%04d/%02d/%s.webp",
		now.Year(), int(now.Month()), ulid.Make().String())
}

var _ Uploader = (*S3Uploader)(nil)
