package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lucsky/cuid"
	"github.com/ktuncer/wastewise/internal/models"
	"github.com/ktuncer/wastewise/internal/orchestrator"
)

// S3Store uploads tray photos and export files to an S3 bucket and
// hands back public reference URLs.
type S3Store struct {
	client        *s3.Client
	bucket        string
	prefix        string
	publicBaseURL string
	region        string
}

func NewS3Store(ctx context.Context, s3cfg models.S3Config) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(s3cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		bucket:        s3cfg.Bucket,
		prefix:        s3cfg.Prefix,
		publicBaseURL: s3cfg.PublicBaseURL,
		region:        s3cfg.Region,
	}, nil
}

// Upload stores every photo of the batch and returns one URL per
// photo, in submission order. Any single failure fails the batch.
func (s *S3Store) Upload(ctx context.Context, photos []orchestrator.Photo, day models.DayKey) ([]string, error) {
	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		key := path.Join(s.prefix, fmt.Sprintf("%s_%s", cuid.New(), photo.Name))
		url, err := s.PutObject(ctx, key, photo.Data, photo.ContentType)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", photo.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// PutObject writes one object and returns its public URL.
func (s *S3Store) PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("unable to upload object to S3: %v", err)
	}
	return s.objectURL(key), nil
}

// PhotoObject is one stored photo reference.
type PhotoObject struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ListPhotos lists the uploaded photo objects under the configured
// prefix.
func (s *S3Store) ListPhotos(ctx context.Context) ([]PhotoObject, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	var photos []PhotoObject
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing photos: %w", err)
		}
		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			photos = append(photos, PhotoObject{ID: key, URL: s.objectURL(key)})
		}
	}
	return photos, nil
}

func (s *S3Store) objectURL(key string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.publicBaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
