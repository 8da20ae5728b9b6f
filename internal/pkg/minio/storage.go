package minio

import (
	"Inkwell/internal/api/config"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
)

// Storage 单个桶上的对象存储适配器
type Storage struct {
	client        *minio.Client
	bucket        string
	presignExpiry time.Duration
}

// NewStorage 基于全局客户端构建指定桶的适配器
func NewStorage(bucket string) *Storage {
	expiry := time.Duration(config.Cfg.MinIO.PresignExpiry) * time.Minute
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &Storage{
		client:        Client,
		bucket:        bucket,
		presignExpiry: expiry,
	}
}

// Upload 上传对象，返回可访问的定位 URL
func (s *Storage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(uploadInfo.Key), nil
}

// Delete 按键删除对象
func (s *Storage) Delete(ctx context.Context, objectName string) error {
	if s.client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// OpenStream 按键打开对象读取流
func (s *Storage) OpenStream(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if s.client == nil {
		return nil, fmt.Errorf("minio client is not initialized")
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open file stream: %w", err)
	}

	return obj, nil
}

// PresignURL 生成限时下载链接
func (s *Storage) PresignURL(ctx context.Context, objectName string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign url: %w", err)
	}

	return u.String(), nil
}

// PublicURL 获取文件的公共访问URL
func (s *Storage) PublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	protocol := "http"
	if cfg.InternalUseSSL || cfg.InternalEndpoint == "" {
		protocol = "https"
	}

	endpoint := cfg.ExternalEndpoint
	if endpoint == "" {
		endpoint = cfg.InternalEndpoint
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, s.bucket, objectName)
}
