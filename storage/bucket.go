// Package storage wraps the S3-compatible bucket that backs cafe images.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cafein/api-go/config"
	"github.com/cafein/api-go/metrics"
)

// PathMarker separates the public base URL from the object key in stored
// image URLs. URLs without the marker were not uploaded through this bucket.
const PathMarker = "/cafe-images/"

// KeyFromURL derives the object key from a stored public URL. ok is false
// when the URL does not contain the path marker.
func KeyFromURL(url string) (key string, ok bool) {
	parts := strings.SplitN(url, PathMarker, 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ObjectStore is the bucket boundary used by the image repository.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(key string) string
	Remove(ctx context.Context, keys ...string) error
}

// Bucket implements ObjectStore against Cloudflare R2 (S3 API).
type Bucket struct {
	client  *s3.Client
	cfg     *config.R2Config
	metrics *metrics.Metrics
}

func NewBucket(cfg *config.R2Config, m *metrics.Metrics) *Bucket {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})

	return &Bucket{client: client, cfg: cfg, metrics: m}
}

func (b *Bucket) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.cfg.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	b.count("upload", err)
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the public URL an uploaded object is served from. The
// returned URL always contains PathMarker so KeyFromURL can reverse it.
func (b *Bucket) PublicURL(key string) string {
	base := strings.TrimRight(b.cfg.PublicURL, "/")
	return base + PathMarker + key
}

func (b *Bucket) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(b.cfg.BucketName),
			Key:    aws.String(key),
		})
		b.count("remove", err)
		if err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

func (b *Bucket) count(op string, err error) {
	if b.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	b.metrics.StorageRequests.WithLabelValues(op, status).Inc()
}
