package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aulasync/aulasync-server/internal/config"
)

// ObjectStorage guarda y recupera los adjuntos de anuncios y entregas.
type ObjectStorage interface {
	Put(ctx context.Context, clave string, contenido []byte, contentType string) error
	Get(ctx context.Context, clave string) ([]byte, error)
	Delete(ctx context.Context, clave string) error
}

type MinIOStorage struct {
	client *minio.Client
	bucket string
}

func NewMinIOStorage(cfg config.StorageConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (s *MinIOStorage) Put(ctx context.Context, clave string, contenido []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, clave,
		bytes.NewReader(contenido), int64(len(contenido)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	return err
}

func (s *MinIOStorage) Get(ctx context.Context, clave string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, clave, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

func (s *MinIOStorage) Delete(ctx context.Context, clave string) error {
	return s.client.RemoveObject(ctx, s.bucket, clave, minio.RemoveObjectOptions{})
}
