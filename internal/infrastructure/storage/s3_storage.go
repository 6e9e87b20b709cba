// Package storage sube imágenes del panel a un almacenamiento S3 compatible
// (endpoint S3 de Supabase Storage, MinIO, AWS S3).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain"
	"github.com/jhoicas/everest-site/pkg/config"
)

var _ ports.ObjectStorage = (*S3ObjectStorage)(nil)

// PutObjectAPI la parte del cliente S3 que se usa.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ObjectStorage implementa ports.ObjectStorage con aws-sdk-go-v2.
type S3ObjectStorage struct {
	client    PutObjectAPI
	bucket    string
	publicURL string
}

// NewS3ObjectStorage crea el cliente S3 a partir de la configuración.
func NewS3ObjectStorage(ctx context.Context, cfg config.StorageConfig) (*S3ObjectStorage, error) {
	if !cfg.Enabled() {
		return nil, errors.New("storage: bucket y credenciales son obligatorios")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: config AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return NewWithClient(client, cfg.Bucket, publicURL), nil
}

// NewWithClient construye el adaptador con un cliente ya armado (tests).
func NewWithClient(client PutObjectAPI, bucket, publicURL string) *S3ObjectStorage {
	return &S3ObjectStorage{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Upload sube el objeto y devuelve su URL pública.
func (s *S3ObjectStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	key = strings.TrimLeft(key, "/")
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %v: %w", key, err, domain.ErrUnavailable)
	}
	return s.publicURL + "/" + key, nil
}
