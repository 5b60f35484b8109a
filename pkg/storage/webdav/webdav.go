package webdav

import (
	"context"
	"io"
	"os"
	"path"

	"github.com/haierkeys/fast-vault-service/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config 结构体用于存储 WebDAV 连接信息。
type Config struct {
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
	PublicURL  string `yaml:"public-url"`
}

// WebDAV 结构体表示 WebDAV 客户端。
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

// NewClient 创建一个新的 WebDAV 客户端实例。
func NewClient(conf *Config) (*WebDAV, error) {
	if conf.Endpoint == "" {
		return nil, errors.New("webdav: endpoint is empty")
	}

	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)

	if conf.PublicURL == "" {
		conf.PublicURL = fileurl.JoinURL(conf.Endpoint, conf.Path)
	}

	return &WebDAV{
		Client: c,
		Config: conf,
	}, nil
}

// SendFile 将内容以流的方式写入 WebDAV 服务器。
func (w *WebDAV) SendFile(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	key := fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey
	remote := path.Join("/", w.Config.Path, key)

	if err := w.Client.MkdirAll(path.Dir(remote), 0755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	if err := w.Client.WriteStream(remote, body, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileurl.JoinURL(w.Config.PublicURL, key), nil
}
