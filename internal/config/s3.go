// internal/config/s3.go
package config

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 configuration for the media store
type S3Config struct {
	Client        *s3.Client
	Bucket        string
	PublicBaseURL string
}

// NewS3Config creates a new S3 configuration from the AWS_* and S3_* variables
func NewS3Config(ctx context.Context) (*S3Config, error) {
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil, errors.New("S3_BUCKET_NAME is required when STORAGE_DRIVER=s3")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(os.Getenv("AWS_REGION")),
	}
	// Fall back to the default chain (instance role, shared profile) without static keys.
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			key,
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		Client:        s3.NewFromConfig(cfg),
		Bucket:        bucket,
		PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", "https://"+bucket+".s3.amazonaws.com"),
	}, nil
}
