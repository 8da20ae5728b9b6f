package service

import (
	"context"
	"io"
)

// ObjectStorage 对象存储抽象，公有桶与私有桶各持一个实例
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	OpenStream(ctx context.Context, objectName string) (io.ReadCloser, error)
	PresignURL(ctx context.Context, objectName string) (string, error)
	PublicURL(objectName string) string
}
