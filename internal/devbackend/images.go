package devbackend

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrImageNotFound = errors.New("image not found")

// ImageStore keeps uploaded image bytes by name.
type ImageStore interface {
	Put(ctx context.Context, name, mimeType string, data []byte) error
	Get(ctx context.Context, name string) (data []byte, mimeType string, err error)
}

// Images returns the SQLite-backed image store sharing d's database.
func (d *DB) Images() ImageStore {
	return sqliteImages{db: d.db}
}

type sqliteImages struct {
	db *sql.DB
}

func (s sqliteImages) Put(ctx context.Context, name, mimeType string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO images(name, mime, data, created_at_unixms) VALUES(?, ?, ?, ?)`,
		name, mimeType, data, time.Now().UnixMilli(),
	)
	return err
}

func (s sqliteImages) Get(ctx context.Context, name string) ([]byte, string, error) {
	var (
		data     []byte
		mimeType string
	)
	err := s.db.QueryRowContext(ctx, `SELECT data, mime FROM images WHERE name = ?`, name).Scan(&data, &mimeType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrImageNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return data, mimeType, nil
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Images stores uploads in an S3-compatible bucket.
type S3Images struct {
	client   *minio.Client
	bucket   string
	region   string
	initOnce sync.Once
	initErr  error
}

func NewS3Images(cfg S3Config) (*S3Images, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Images{client: client, bucket: bucket, region: region}, nil
}

func (s *S3Images) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *S3Images) Put(ctx context.Context, name, mimeType string, data []byte) error {
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	return err
}

func (s *S3Images) Get(ctx context.Context, name string) ([]byte, string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, "", fmt.Errorf("ensure bucket: %w", err)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return nil, "", ErrImageNotFound
		}
		return nil, "", err
	}
	info, err := obj.Stat()
	if err != nil {
		return data, "application/octet-stream", nil
	}
	return data, info.ContentType, nil
}

func objectKey(name string) string {
	return "images/" + strings.TrimLeft(strings.TrimSpace(name), "/")
}
