package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"imagehost/internal/app/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// Ключи пользовательских метаданных объекта
const (
	metaOriginalName = "Original-Name"
	metaUploadedAt   = "Uploaded-At"
	metaFileSize     = "File-Size"
	metaUUID         = "Uuid"
)

type MinIOStorage struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOStorage создает клиент MinIO и готовит bucket
func NewMinIOStorage(cfg *config.Config) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Создаем bucket если не существует
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", cfg.Minio.Bucket)
	}

	return &MinIOStorage{
		client:     client,
		bucketName: cfg.Minio.Bucket,
	}, nil
}

// Put загружает объект вместе с пользовательскими метаданными
func (m *MinIOStorage) Put(ctx context.Context, name string, data []byte, info ObjectInfo) error {
	reader := bytes.NewReader(data)
	_, err := m.client.PutObject(ctx, m.bucketName, name, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: info.ContentType,
		UserMetadata: map[string]string{
			metaOriginalName: info.OriginalName,
			metaUploadedAt:   info.UploadedAt.Format(time.RFC3339),
			metaFileSize:     strconv.FormatInt(info.Size, 10),
			metaUUID:         info.UUID,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	logrus.Infof("Object %s uploaded successfully", name)
	return nil
}

// Get скачивает объект и его метаданные
func (m *MinIOStorage) Get(ctx context.Context, name string) ([]byte, ObjectInfo, error) {
	stat, err := m.client.StatObject(ctx, m.bucketName, name, minio.StatObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, m.wrapError(err)
	}

	object, err := m.client.GetObject(ctx, m.bucketName, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, m.wrapError(err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("failed to read object: %w", err)
	}

	info := ObjectInfo{
		ContentType:  stat.ContentType,
		Size:         stat.Size,
		ETag:         stat.ETag,
		OriginalName: stat.UserMetadata[metaOriginalName],
		UUID:         stat.UserMetadata[metaUUID],
	}
	if ts, err := time.Parse(time.RFC3339, stat.UserMetadata[metaUploadedAt]); err == nil {
		info.UploadedAt = ts
	}

	return data, info, nil
}

// Delete удаляет объект из хранилища
func (m *MinIOStorage) Delete(ctx context.Context, name string) error {
	err := m.client.RemoveObject(ctx, m.bucketName, name, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	logrus.Infof("Object %s deleted successfully", name)
	return nil
}

// Exists проверяет существует ли объект
func (m *MinIOStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucketName, name, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object: %w", err)
	}

	return true, nil
}

func (m *MinIOStorage) wrapError(err error) error {
	errResponse := minio.ToErrorResponse(err)
	if errResponse.Code == "NoSuchKey" {
		return ErrNotFound
	}
	return fmt.Errorf("storage error: %w", err)
}
