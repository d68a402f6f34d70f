package photostore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps photo records in an S3-compatible bucket (AWS S3 or MinIO),
// one JSON object per equipment id. Appends are read-modify-write; the
// single-writer model of the service makes that safe.
type S3Store struct {
	client *s3.Client
	bucket string
}

// S3Config holds construction parameters for the S3 store. Credentials come
// from the default AWS chain.
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	PathStyle bool
}

// NewS3Store creates an S3 photo store.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3Store) keyFor(equipmentID string) string {
	return "photos/" + equipmentID + ".json"
}

// Append adds photo records for the given equipment id.
func (s *S3Store) Append(ctx context.Context, equipmentID string, photos []Photo) error {
	key := s.keyFor(equipmentID)

	existing, err := s.read(ctx, key)
	if err != nil {
		return err
	}
	existing = append(existing, photos...)

	data, err := json.Marshal(existing)
	if err != nil {
		return err
	}

	contentType := "application/json"
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// List returns the photo records stored for the given equipment id in append
// order.
func (s *S3Store) List(ctx context.Context, equipmentID string) ([]Photo, error) {
	return s.read(ctx, s.keyFor(equipmentID))
}

func (s *S3Store) read(ctx context.Context, key string) ([]Photo, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return []Photo{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var photos []Photo
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return photos, nil
}
