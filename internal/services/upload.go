package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultMaxUploadBytes caps an uploaded image
const DefaultMaxUploadBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectStore persists an uploaded object and returns its public URL
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// S3Options configures an S3 compatible bucket
type S3Options struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	PublicURL string
}

// S3Store writes objects to an S3 compatible bucket
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store creates an S3 client. Static credentials are used when both keys
// are set, otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimRight(opts.PublicURL, "/")
	if publicURL == "" {
		if opts.Endpoint != "" {
			publicURL = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
		}
	}

	return &S3Store{client: client, bucket: opts.Bucket, publicURL: publicURL}, nil
}

// Put uploads data under key
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// LocalStore writes objects below a directory served at baseURL
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the directory if needed
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the directory holding stored objects
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data to dir/key
func (s *LocalStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// UploadService validates images and hands them to an ObjectStore
type UploadService struct {
	store    ObjectStore
	maxBytes int64
}

// NewUploadService creates a new upload service. maxBytes <= 0 selects DefaultMaxUploadBytes.
func NewUploadService(store ObjectStore, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{store: store, maxBytes: maxBytes}
}

// MaxBytes is the largest accepted image
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload sniffs the content type, rejects anything but images and stores the file
func (s *UploadService) Upload(ctx context.Context, data []byte) (*models.UploadResult, error) {
	if len(data) == 0 {
		return nil, &schema.ValidationError{Field: "file", Message: "No file uploaded"}
	}
	if int64(len(data)) > s.maxBytes {
		return nil, &schema.ValidationError{Field: "file", Message: fmt.Sprintf("File must be at most %d bytes", s.maxBytes)}
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, &schema.ValidationError{Field: "file", Message: "Only JPEG, PNG, GIF and WebP images are allowed"}
	}

	key := path.Join("puppies", uuid.New().String()+ext)
	url, err := s.store.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	log.Info().Str("key", key).Str("content_type", contentType).Int("size", len(data)).Msg("Image uploaded")
	return &models.UploadResult{URL: url}, nil
}
