package garage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"dating-admin/pkg/storage"
)

const presignTTL = time.Hour

type garageStorage struct {
	client *s3.Client
	bucket string
}

// NewGarageStorage crée un storage S3-compatible (Garage, MinIO)
func NewGarageStorage(cfg *storage.StorageConfig) (storage.Storage, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	garage := &garageStorage{
		client: client,
		bucket: cfg.Bucket,
	}

	if err := garage.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return garage, nil
}

func checkConfig(cfg *storage.StorageConfig) error {
	switch {
	case cfg.Endpoint == "":
		return errors.New("garage endpoint is required")
	case cfg.AccessKey == "":
		return errors.New("garage access key is required")
	case cfg.SecretKey == "":
		return errors.New("garage secret key is required")
	case cfg.Bucket == "":
		return errors.New("garage bucket is required")
	}
	return nil
}

func (g *garageStorage) ensureBucket(ctx context.Context) error {
	if _, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(g.bucket)}); err == nil {
		return nil
	}

	if _, err := g.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(g.bucket)}); err != nil {
		return fmt.Errorf("bucket %s does not exist and cannot be created: %w", g.bucket, err)
	}
	return nil
}

func objectKey(path string) string {
	return strings.TrimPrefix(path, "/")
}

func (g *garageStorage) Upload(ctx context.Context, path string, data io.Reader) error {
	key := objectKey(path)

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(getContentType(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s to bucket %s: %w", key, g.bucket, err)
	}
	return nil
}

func (g *garageStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	key := objectKey(path)

	result, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("object %s: %w", key, storage.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to download object %s from bucket %s: %w", key, g.bucket, err)
	}

	return result.Body, nil
}

func (g *garageStorage) Exists(ctx context.Context, path string) (bool, error) {
	key := objectKey(path)

	_, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence %s: %w", key, err)
	}
	return true, nil
}

func (g *garageStorage) Delete(ctx context.Context, path string) error {
	key := objectKey(path)

	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s from bucket %s: %w", key, g.bucket, err)
	}
	return nil
}

func (g *garageStorage) List(ctx context.Context, prefix string) ([]string, error) {
	cleanPrefix := objectKey(prefix)

	var objects []string
	paginator := s3.NewListObjectsV2Paginator(g.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(g.bucket),
		Prefix: aws.String(cleanPrefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects with prefix %s: %w", cleanPrefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				objects = append(objects, *obj.Key)
			}
		}
	}

	return objects, nil
}

// GetURL retourne une URL présignée valable une heure
func (g *garageStorage) GetURL(ctx context.Context, path string) (string, error) {
	key := objectKey(path)

	request, err := s3.NewPresignClient(g.client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for %s: %w", key, err)
	}

	return request.URL, nil
}

func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
