package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config options for the S3 backend.
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	PublicBaseURL   string // Optional base for public object URLs (e.g. a CDN)
}

// Backend is an AWS S3 implementation of the storage.Storage interface.
// The bucket is expected to allow public reads; Upload returns the public
// object URL rather than a presigned one.
type Backend struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

// New creates a new S3 storage backend.
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
		if config.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	publicBaseURL := config.PublicBaseURL
	if publicBaseURL == "" && config.Endpoint != "" {
		// S3-compatible services (MinIO etc.) serve objects at
		// {endpoint}/{bucket}.
		base, err := url.JoinPath(config.Endpoint, config.Bucket)
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint: %w", err)
		}
		publicBaseURL = base
	}

	return &Backend{
		client:        client,
		bucket:        config.Bucket,
		region:        config.Region,
		publicBaseURL: publicBaseURL,
	}, nil
}

// Upload uploads data under objectKey, overwriting any existing object at
// that key, and returns the public URL of the stored object.
func (b *Backend) Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error) {
	uploader := manager.NewUploader(b.client)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return b.publicURL(objectKey), nil
}

func (b *Backend) publicURL(objectKey string) string {
	if b.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(b.publicBaseURL, "/"), objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, objectKey)
}
