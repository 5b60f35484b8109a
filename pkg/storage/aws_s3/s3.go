package aws_s3

import (
	"context"
	"fmt"
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
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	PublicURL       string `yaml:"public-url"`
}

type S3 struct {
	S3Client        *s3.Client
	TransferManager *transfermanager.Client
	Config          *Config
	logger          *zap.Logger
}

// Option 配置选项函数类型
type Option func(*S3)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *S3) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewClient 创建 S3 存储实例
// opts 可选参数用于配置日志器等选项
func NewClient(conf *Config, opts ...Option) (*S3, error) {
	if conf.BucketName == "" {
		return nil, errors.New("aws_s3: bucket name is empty")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}

	client := s3.NewFromConfig(cfg)

	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", conf.BucketName, conf.Region)
	}

	s := &S3{
		S3Client:        client,
		TransferManager: transfermanager.New(client),
		Config:          conf,
		logger:          zap.NewNop(), // 默认空日志器
	}
	// 应用选项
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SendFile 上传文件，返回 <public-url>/<custom-path><fileKey>
func (p *S3) SendFile(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) (string, error) {
	key := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	_, err := p.TransferManager.UploadObject(ctx, &transfermanager.UploadObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		p.logger.Warn("s3 upload failed",
			zap.String(logger.FieldBucket, p.Config.BucketName),
			zap.String(logger.FieldFileKey, key),
			zap.Error(err),
		)
		return "", errors.Wrap(err, "aws_s3")
	}

	return fileurl.JoinURL(p.Config.PublicURL, key), nil
}
