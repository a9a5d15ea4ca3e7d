package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/maheshrc27/tripnest-api/configs"
)

// ObjectStorage stores uploaded images and serves them from a public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, file []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type R2Service struct {
	config cfg.Config
	client *s3.Client
}

func NewR2Service(ctx context.Context, c cfg.Config) (*R2Service, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.R2.AccessKey, c.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2.AccountID))
	})
	return &R2Service{config: c, client: client}, nil
}

// Upload puts the object in the bucket and returns its public URL.
func (r *R2Service) Upload(ctx context.Context, key string, file []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return r.PublicURL(key), nil
}

func (r *R2Service) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.R2.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *R2Service) PublicURL(key string) string {
	return strings.TrimRight(r.config.R2.PublicURL, "/") + "/" + key
}
