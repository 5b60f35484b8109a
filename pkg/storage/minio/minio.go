package minio

import (
	"context"
	"io"

	"github.com/haierkeys/fast-vault-service/pkg/fileurl"
	"github.com/haierkeys/fast-vault-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/transfermanager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	BucketName      string `yaml:"bucket-name"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	PublicURL       string `yaml:"public-url"`
}

type MinIO struct {
	S3Client        *s3.Client
	TransferManager *transfermanager.Client
	Config          *Config
	logger          *zap.Logger
}

// Option 配置选项函数类型
type Option func(*MinIO)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(m *MinIO) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewClient 创建 MinIO 存储实例
// opts 可选参数用于配置日志器等选项
func NewClient(conf *Config, opts ...Option) (*MinIO, error) {
	if conf.Endpoint == "" || conf.BucketName == "" {
		return nil, errors.New("minio: endpoint and bucket name are required")
	}
	if conf.Region == "" {
		conf.Region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "minio")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(conf.Endpoint)
	})

	// 路径风格访问：<endpoint>/<bucket>
	if conf.PublicURL == "" {
		conf.PublicURL = fileurl.JoinURL(conf.Endpoint, conf.BucketName)
	}

	m := &MinIO{
		S3Client:        client,
		TransferManager: transfermanager.New(client),
		Config:          conf,
		logger:          zap.NewNop(), // 默认空日志器
	}
	// 应用选项
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// SendFile 上传文件
func (p *MinIO) SendFile(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) (string, error) {
	key := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	_, err := p.TransferManager.UploadObject(ctx, &transfermanager.UploadObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		p.logger.Warn("minio upload failed",
			zap.String(logger.FieldBucket, p.Config.BucketName),
			zap.String(logger.FieldFileKey, key),
			zap.Error(err),
		)
		return "", errors.Wrap(err, "minio")
	}

	return fileurl.JoinURL(p.Config.PublicURL, key), nil
}
