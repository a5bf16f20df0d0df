package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound возвращается, когда объекта нет в хранилище
var ErrNotFound = errors.New("object not found")

// ObjectInfo — метаданные объекта, прикрепляемые при записи
type ObjectInfo struct {
	ContentType  string
	Size         int64
	ETag         string
	OriginalName string
	UploadedAt   time.Time
	UUID         string
}

// ObjectStorage определяет поведение любого бэкенда объектного хранилища
type ObjectStorage interface {
	Put(ctx context.Context, name string, data []byte, info ObjectInfo) error
	Get(ctx context.Context, name string) ([]byte, ObjectInfo, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}
