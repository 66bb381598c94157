package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/travel-agency/internal/config"
	"github.com/ukydev/travel-agency/internal/models"
)

type MockPutter struct {
	mock.Mock
}

func (m *MockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewS3ImageStore_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ImageStore(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ImageStore(&config.StorageConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("public url derives from endpoint", func(t *testing.T) {
		store, err := NewS3ImageStore(&config.StorageConfig{Bucket: "cms-images", Endpoint: "localhost:9000/"}, WithClient(new(MockPutter)))
		require.NoError(t, err)
		assert.Equal(t, "https://localhost:9000/cms-images/cars/a.png", store.PublicURL("cars/a.png"))
	})

	t.Run("explicit public url wins", func(t *testing.T) {
		store, err := NewS3ImageStore(&config.StorageConfig{Bucket: "cms-images", PublicURL: "https://cdn.example.com/"}, WithClient(new(MockPutter)))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/packages/a.jpg", store.PublicURL("packages/a.jpg"))
	})
}

func TestObjectKey(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	store, err := NewS3ImageStore(&config.StorageConfig{Bucket: "cms-images"}, WithClient(new(MockPutter)), WithClock(fixedClock(at)))
	require.NoError(t, err)

	first := store.ObjectKey(models.KindPackages, "Beach.JPG")
	second := store.ObjectKey(models.KindPackages, "beach.jpg")
	noExt := store.ObjectKey(models.KindCars, "photo")

	assert.Equal(t, "packages/packages-1700000000000.jpg", first)
	assert.Equal(t, "packages/packages-1700000000001.jpg", second)
	assert.Equal(t, "cars/cars-1700000000002.bin", noExt)
}

func TestUploadImage(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	t.Run("successful upload returns public url", func(t *testing.T) {
		putter := new(MockPutter)
		store, err := NewS3ImageStore(&config.StorageConfig{Bucket: "cms-images", PublicURL: "https://cdn.example.com"},
			WithClient(putter), WithClock(fixedClock(at)))
		require.NoError(t, err)

		putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return *in.Bucket == "cms-images" && *in.Key == "cars/cars-1700000000000.png" && *in.ContentType == "image/png"
		})).Return(&s3.PutObjectOutput{}, nil)

		url, err := store.UploadImage(context.Background(), models.KindCars, "yaris.png", "image/png", strings.NewReader("img"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/cars/cars-1700000000000.png", url)
		putter.AssertExpectations(t)
	})

	t.Run("storage failure is an UploadError", func(t *testing.T) {
		putter := new(MockPutter)
		store, err := NewS3ImageStore(&config.StorageConfig{Bucket: "cms-images"}, WithClient(putter), WithClock(fixedClock(at)))
		require.NoError(t, err)

		putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

		url, err := store.UploadImage(context.Background(), models.KindPackages, "a.jpg", "", strings.NewReader("img"))
		assert.Empty(t, url)
		var ue *UploadError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, "packages/packages-1700000000000.jpg", ue.Key)
	})

	t.Run("unknown namespace is rejected", func(t *testing.T) {
		store, err := NewS3ImageStore(&config.StorageConfig{Bucket: "cms-images"}, WithClient(new(MockPutter)))
		require.NoError(t, err)

		_, err = store.UploadImage(context.Background(), "users", "a.jpg", "", strings.NewReader("img"))
		var ue *UploadError
		assert.True(t, errors.As(err, &ue))
	})
}
