package cdn

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const productFolder = "products"

// S3ImageStore uploads product images to a public bucket and serves them
// from the bucket URL or a CDN base URL in front of it.
type S3ImageStore struct {
	client        *s3.Client
	uploader      *manager.Uploader
	loader        *SourceLoader
	bucket        string
	publicBaseURL string
}

func NewS3ImageStore(ctx context.Context, bucket, publicBaseURL string) (*S3ImageStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3ImageStore{
		client:        client,
		uploader:      manager.NewUploader(client),
		loader:        NewSourceLoader(),
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Store loads the image behind source and uploads it, returning its public URL.
func (s *S3ImageStore) Store(ctx context.Context, source string) (string, error) {
	img, err := s.loader.Load(ctx, source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	key := productFolder + "/" + uuid.NewString() + img.Ext()
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ACL:         "public-read",
		ContentType: aws.String(img.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return result.Location, nil
}

// Remove deletes the object behind a URL this store produced.
func (s *S3ImageStore) Remove(ctx context.Context, imageURL string) error {
	key, ok := objectKey(imageURL)
	if !ok {
		return fmt.Errorf("not a product image URL: %s", imageURL)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete image %s: %w", key, err)
	}
	return nil
}

// Hosts reports whether imageURL already points into this store.
func (s *S3ImageStore) Hosts(imageURL string) bool {
	if s.publicBaseURL != "" && strings.HasPrefix(imageURL, s.publicBaseURL+"/") {
		return true
	}
	if s.bucket == "" {
		return false
	}
	u, err := url.Parse(imageURL)
	if err != nil {
		return false
	}
	if !strings.Contains(u.Host, s.bucket) && !strings.HasPrefix(strings.TrimPrefix(u.Path, "/"), s.bucket+"/") {
		return false
	}
	_, ok := objectKey(imageURL)
	return ok
}

// objectKey extracts "products/<name>" from virtual-hosted, path-style or
// CDN URLs.
func objectKey(imageURL string) (string, bool) {
	u, err := url.Parse(imageURL)
	if err != nil || u.Path == "" {
		return "", false
	}
	path := strings.TrimPrefix(u.Path, "/")
	idx := strings.Index(path, productFolder+"/")
	if idx < 0 || idx+len(productFolder)+1 == len(path) {
		return "", false
	}
	if idx > 0 && path[idx-1] != '/' {
		return "", false
	}
	return path[idx:], true
}
