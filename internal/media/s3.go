// internal/media/s3.go
//
// S3 resolver.  Private buckets serve images through presigned GET URLs
// with a bounded lifetime; absolute URLs stored by editors pass through.

package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/FlorinRO/ateliere-la-scanteia/internal/config"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
)

// S3Resolver presigns object keys.
type S3Resolver struct {
	presign func(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	bucket  string
	ttl     time.Duration
}

// NewS3Resolver loads the default AWS credential chain and builds a
// presign client for cfg.S3Bucket.
func NewS3Resolver(ctx context.Context, cfg appconfig.Media) (*S3Resolver, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	pc := s3.NewPresignClient(s3.NewFromConfig(awsCfg))

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &S3Resolver{
		presign: func(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
			req, err := pc.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			}, s3.WithPresignExpires(ttl))
			if err != nil {
				return "", err
			}
			return req.URL, nil
		},
		bucket: cfg.S3Bucket,
		ttl:    ttl,
	}, nil
}

// URL presigns ref.  A presign failure is logged and rendered as nil so
// one broken key never fails a whole page.
func (r *S3Resolver) URL(ctx context.Context, ref string) *string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if isAbsolute(ref) {
		return &ref
	}
	u, err := r.presign(ctx, r.bucket, strings.TrimLeft(ref, "/"), r.ttl)
	if err != nil {
		logger.FromContext(ctx).Warnw("presign failed", "bucket", r.bucket, "key", ref, "err", err)
		return nil
	}
	return &u
}
