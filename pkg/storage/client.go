package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/haierkeys/fast-vault-service/pkg/logger"

	"go.uber.org/zap"
)

// Client names objects, derives their content type and hands them to the configured backend.
// Client 为对象命名、推导内容类型并交给配置的存储后端
type Client struct {
	backend     Backend
	storageType Type
	logger      *zap.Logger
	now         func() time.Time
}

var _ Storager = (*Client)(nil)

// Option Client 选项
type Option func(*Client)

// WithClock overrides the clock used for filenames
// WithClock 替换生成文件名使用的时钟
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient builds the single storage entry point from configuration
// NewClient 根据配置创建唯一的存储入口
func NewClient(config *Config, lg *zap.Logger, opts ...Option) (*Client, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	backend, err := NewBackend(config, lg)
	if err != nil {
		return nil, err
	}
	return NewClientWithBackend(config.Type, backend, lg, opts...), nil
}

// NewClientWithBackend wraps an already built backend
// NewClientWithBackend 包装已创建的存储后端
func NewClientWithBackend(storageType Type, backend Backend, lg *zap.Logger, opts ...Option) *Client {
	if lg == nil {
		lg = zap.NewNop()
	}
	c := &Client{
		backend:     backend,
		storageType: storageType,
		logger:      lg,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store writes body under a freshly generated filename and returns its public URL.
// Every failure wraps ErrStorageFailure.
// Store 以新生成的文件名写入内容并返回公开 URL，所有失败都包装 ErrStorageFailure
func (c *Client) Store(ctx context.Context, body io.Reader, size int64, filename string, itemType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	fileKey := GenerateFilename(itemType, filename, c.now())
	contentType := ContentType(fileKey, itemType)

	url, err := c.backend.SendFile(ctx, fileKey, body, size, contentType)
	if err != nil {
		c.logger.Error("storage send file failed",
			zap.String(logger.FieldStorage, c.storageType),
			zap.String(logger.FieldFileKey, fileKey),
			zap.Int64(logger.FieldSize, size),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %s: %w", ErrStorageFailure, c.storageType, err)
	}

	c.logger.Debug("storage send file",
		zap.String(logger.FieldStorage, c.storageType),
		zap.String(logger.FieldFileKey, fileKey),
		zap.String(logger.FieldURL, url),
	)
	return url, nil
}
