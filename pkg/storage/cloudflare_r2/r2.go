package cloudflare_r2

import (
	"context"
	"fmt"
	"io"

	"github.com/haierkeys/fast-vault-service/pkg/fileurl"
	"github.com/haierkeys/fast-vault-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	AccountID       string `yaml:"account-id"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	PublicURL       string `yaml:"public-url"`
}

type R2 struct {
	S3Client *s3.Client
	Config   *Config
	logger   *zap.Logger
}

// Option configuration option function type
// Option 配置选项函数类型
type Option func(*R2)

// WithLogger sets the logger
// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(r *R2) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewClient creates an R2 storage instance.
// R2 buckets are not publicly readable through the API endpoint, so a public URL is required.
// NewClient 创建 R2 存储实例，R2 的 API 端点不可公开读取，因此必须配置 public-url
func NewClient(conf *Config, opts ...Option) (*R2, error) {
	if conf.AccountID == "" || conf.BucketName == "" {
		return nil, errors.New("cloudflare_r2: account id and bucket name are required")
	}
	if conf.PublicURL == "" {
		return nil, errors.New("cloudflare_r2: public url is required")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "cloudflare_r2")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", conf.AccountID))
	})

	r := &R2{
		S3Client: client,
		Config:   conf,
		logger:   zap.NewNop(), // Default Nop logger
	}
	// Apply options
	// 应用选项
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// SendFile uploads with a single PutObject
// SendFile 通过单次 PutObject 上传
func (p *R2) SendFile(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) (string, error) {
	bucket := p.Config.BucketName
	key := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	_, err := p.S3Client.PutObject(ctx, input)
	if err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			p.logger.Warn("Bucket does not exist",
				zap.String(logger.FieldBucket, bucket),
				zap.Error(err),
			)
		}
		return "", errors.Wrap(err, "cloudflare_r2")
	}

	return fileurl.JoinURL(p.Config.PublicURL, key), nil
}
