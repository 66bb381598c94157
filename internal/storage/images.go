// Package storage uploads CMS images to an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/travel-agency/internal/config"
	"github.com/ukydev/travel-agency/internal/models"
)

// UploadError wraps a failed storage write.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, kind models.Kind, filename, contentType string, body io.Reader) (string, error)
}

// ObjectPutter is the subset of the S3 client used here.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore implements ImageUploader on an S3-compatible bucket.
type S3ImageStore struct {
	client    ObjectPutter
	bucket    string
	publicURL string
	clock     func() time.Time

	mu   sync.Mutex
	last int64
}

// Option configures an S3ImageStore.
type Option func(*S3ImageStore)

// WithClient replaces the S3 client.
func WithClient(client ObjectPutter) Option {
	return func(s *S3ImageStore) {
		s.client = client
	}
}

// WithClock replaces the clock used for key names.
func WithClock(clock func() time.Time) Option {
	return func(s *S3ImageStore) {
		s.clock = clock
	}
}

// NewS3ImageStore creates an image store from configuration.
func NewS3ImageStore(cfg *config.StorageConfig, opts ...Option) (*S3ImageStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	store := &S3ImageStore{
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		clock:     time.Now,
	}
	if store.publicURL == "" {
		if endpoint != "" {
			store.publicURL = endpoint + "/" + cfg.Bucket
		} else {
			store.publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	for _, opt := range opts {
		opt(store)
	}
	if store.client != nil {
		return store, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}
	store.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return store, nil
}

// ObjectKey names a new object as <kind>/<kind>-<millis>.<ext>. Millisecond
// stamps never repeat within one store.
func (s *S3ImageStore) ObjectKey(kind models.Kind, filename string) string {
	s.mu.Lock()
	stamp := s.clock().UnixMilli()
	if stamp <= s.last {
		stamp = s.last + 1
	}
	s.last = stamp
	s.mu.Unlock()

	return fmt.Sprintf("%s/%s-%d.%s", kind, kind, stamp, extension(filename))
}

// PublicURL resolves the public address of key.
func (s *S3ImageStore) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// UploadImage writes body under a fresh key and returns its public URL.
func (s *S3ImageStore) UploadImage(ctx context.Context, kind models.Kind, filename, contentType string, body io.Reader) (string, error) {
	if !models.IsValidKind(kind) {
		return "", &UploadError{Err: fmt.Errorf("unknown image namespace %q", kind)}
	}
	key := s.ObjectKey(kind, filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.WithError(err).WithField("key", key).Error("Image upload failed")
		return "", &UploadError{Key: key, Err: err}
	}
	log.WithFields(log.Fields{"key": key, "bucket": s.bucket}).Info("Uploaded image")
	return s.PublicURL(key), nil
}

func extension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return "bin"
	}
	return ext
}
