package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/you/contactsvc/domain"
)

// putObjectAPI is the part of *s3.Client the image host uses
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Settings configures an S3-compatible bucket (AWS, MinIO)
type S3Settings struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// S3ImageHost implements domain.ImageHost on an S3 bucket
type S3ImageHost struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// NewS3ImageHost creates an image host for the configured bucket
func NewS3ImageHost(ctx context.Context, settings S3Settings) (domain.ImageHost, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(settings.Region)}
	if settings.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3ImageHost(client, settings), nil
}

func newS3ImageHost(client putObjectAPI, settings S3Settings) *S3ImageHost {
	return &S3ImageHost{
		client:  client,
		bucket:  settings.Bucket,
		baseURL: publicBaseURL(settings),
	}
}

// publicBaseURL is the prefix objects are served from
func publicBaseURL(s S3Settings) string {
	switch {
	case s.PublicURL != "":
		return strings.TrimRight(s.PublicURL, "/")
	case s.Endpoint != "":
		return strings.TrimRight(s.Endpoint, "/") + "/" + s.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.Bucket, s.Region)
}

// Upload implements domain.ImageHost. Uploading to an existing key replaces the object.
func (h *S3ImageHost) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return h.baseURL + "/" + key, nil
}
