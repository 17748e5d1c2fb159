// Package storage implementa el almacenamiento de adjuntos sobre MinIO/S3.
// Los URI resultantes se guardan en la lista de adjuntos de la orden de
// trabajo (el candado de cierre cuenta entradas, no bytes).
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Rowther/multitenantcrm/pkg/config"
)

// MinioStorage sube adjuntos y construye sus URI públicos.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStorage construye el cliente y garantiza que el bucket exista.
func NewMinioStorage(ctx context.Context, cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("verificar bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("crear bucket: %w", err)
		}
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &MinioStorage{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

// Upload sube un adjunto bajo company_id/work_order_id/ y devuelve su URI.
// El nombre del objeto lleva un UUID para no pisar archivos homónimos.
func (s *MinioStorage) Upload(ctx context.Context, companyID, workOrderID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := path.Join(companyID, workOrderID, uuid.New().String()+path.Ext(filename))
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("subir adjunto: %w", err)
	}
	return s.publicURL + "/" + objectName, nil
}

// PresignedGet genera un URL de descarga temporal para un objeto.
func (s *MinioStorage) PresignedGet(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign adjunto: %w", err)
	}
	return u.String(), nil
}
