package storage

import (
	"context"
	"errors"
	"io"

	"github.com/haierkeys/fast-vault-service/pkg/code"
	"github.com/haierkeys/fast-vault-service/pkg/storage/aliyun_oss"
	"github.com/haierkeys/fast-vault-service/pkg/storage/aws_s3"
	"github.com/haierkeys/fast-vault-service/pkg/storage/cloudflare_r2"
	"github.com/haierkeys/fast-vault-service/pkg/storage/local_fs"
	"github.com/haierkeys/fast-vault-service/pkg/storage/minio"
	"github.com/haierkeys/fast-vault-service/pkg/storage/webdav"

	"go.uber.org/zap"
)

type Type = string

const OSS Type = "oss"
const R2 Type = "r2"
const S3 Type = "s3"
const LOCAL Type = "localfs"
const MinIO Type = "minio"
const WebDAV Type = "webdav"

var StorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	LOCAL:  true,
	MinIO:  true,
	WebDAV: true,
}

// ErrStorageFailure is matched with errors.Is by callers to tell storage failures apart
// ErrStorageFailure 存储失败哨兵错误，调用方通过 errors.Is 识别
var ErrStorageFailure = errors.New("storage failure")

// Config Unified storage configuration
// Config 统一存储配置
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Common settings
	CustomPath string `yaml:"custom-path"`
	PublicURL  string `yaml:"public-url"`

	// Cloud Storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"`

	// Local FS
	SavePath  string `yaml:"save-path" default:"storage/uploads"`
	URLPrefix string `yaml:"url-prefix" default:"/uploads"`
}

// Backend writes one object under fileKey and returns its public URL
// Backend 写入一个对象并返回其公开访问地址
type Backend interface {
	SendFile(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) (string, error)
}

// Storager persists a binary payload and returns a durable URL for it
// Storager 持久化二进制内容并返回可长期访问的 URL
type Storager interface {
	Store(ctx context.Context, body io.Reader, size int64, filename string, itemType string) (string, error)
}

// NewBackend selects the backend named by config.Type
// NewBackend 根据 config.Type 选择存储后端
func NewBackend(config *Config, lg *zap.Logger) (Backend, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:  config.SavePath,
			URLPrefix: config.URLPrefix,
		})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PublicURL:       config.PublicURL,
		})
	case R2:
		return cloudflare_r2.NewClient(&cloudflare_r2.Config{
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PublicURL:       config.PublicURL,
		}, cloudflare_r2.WithLogger(lg))
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PublicURL:       config.PublicURL,
		}, aws_s3.WithLogger(lg))
	case MinIO:
		return minio.NewClient(&minio.Config{
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PublicURL:       config.PublicURL,
		}, minio.WithLogger(lg))
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			Path:       config.Path,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
			PublicURL:  config.PublicURL,
		})
	}
	return nil, code.ErrorInvalidStorageType.WithDetails(config.Type)
}
