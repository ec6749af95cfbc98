package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"weatherapi/internal/config"
)

var (
	ErrPayloadNotFound = errors.New("archived payload not found")
	ErrArchiveConfig   = errors.New("invalid archive config")
)

const bucketCheckTimeout = 10 * time.Second

// minioArchive stores payloads in a single MinIO bucket. Safe for concurrent use.
type minioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinIO connects to the archive bucket, creating it on first start.
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (Archive, error) {
	switch {
	case cfg.Endpoint == "":
		return nil, fmt.Errorf("%w: minio endpoint is required", ErrArchiveConfig)
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return nil, fmt.Errorf("%w: minio credentials are required", ErrArchiveConfig)
	case cfg.Bucket == "":
		return nil, fmt.Errorf("%w: minio bucket is required", ErrArchiveConfig)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()

	ok, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("archive bucket %q: %w", cfg.Bucket, err)
	}
	if !ok {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create archive bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &minioArchive{client: cli, bucket: cfg.Bucket}, nil
}

func (a *minioArchive) Put(ctx context.Context, key string, r io.Reader, opt PayloadOptions) (PayloadInfo, error) {
	up, err := a.client.PutObject(ctx, a.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return PayloadInfo{}, fmt.Errorf("archive %s: %w", key, err)
	}
	return PayloadInfo{
		Key:         key,
		Size:        up.Size,
		ContentType: opt.ContentType,
		StoredAt:    time.Now(),
		Metadata:    opt.Metadata,
	}, nil
}

func (a *minioArchive) Get(ctx context.Context, key string) (io.ReadCloser, PayloadInfo, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, PayloadInfo{}, err
	}
	// GetObject is lazy; Stat is the first round trip.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, PayloadInfo{}, fmt.Errorf("%w: %s", ErrPayloadNotFound, key)
		}
		return nil, PayloadInfo{}, err
	}
	return obj, PayloadInfo{
		Key:         key,
		Size:        st.Size,
		ContentType: st.ContentType,
		StoredAt:    st.LastModified,
		Metadata:    st.UserMetadata,
	}, nil
}

func (a *minioArchive) Delete(ctx context.Context, key string) error {
	return a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{})
}

func (a *minioArchive) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := a.client.PresignedGetObject(ctx, a.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
