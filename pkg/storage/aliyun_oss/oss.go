package aliyun_oss

import (
	"context"
	"io"
	"strings"

	"github.com/haierkeys/fast-vault-service/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	PublicURL       string `yaml:"public-url"`
}

type OSS struct {
	Client *oss.Client
	Bucket *oss.Bucket
	Config *Config
}

// NewClient 创建阿里云 OSS 存储实例
func NewClient(conf *Config) (*OSS, error) {
	if conf.Endpoint == "" || conf.BucketName == "" {
		return nil, errors.New("aliyun_oss: endpoint and bucket name are required")
	}

	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}

	bucket, err := client.Bucket(conf.BucketName)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}

	// 默认虚拟主机风格：https://<bucket>.<endpoint>
	if conf.PublicURL == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(conf.Endpoint, "https://"), "http://")
		conf.PublicURL = "https://" + conf.BucketName + "." + strings.TrimSuffix(host, "/")
	}

	return &OSS{
		Client: client,
		Bucket: bucket,
		Config: conf,
	}, nil
}

// SendFile 上传文件
func (p *OSS) SendFile(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) (string, error) {
	key := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	err := p.Bucket.PutObject(key, body,
		oss.ContentType(contentType),
		oss.WithContext(ctx),
	)
	if err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileurl.JoinURL(p.Config.PublicURL, key), nil
}
