package local_fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/haierkeys/fast-vault-service/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath  string `yaml:"save-path" default:"storage/uploads"`
	URLPrefix string `yaml:"url-prefix" default:"/uploads"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf == nil || conf.SavePath == "" {
		return nil, errors.New("local_fs: save path is empty")
	}
	if conf.URLPrefix == "" {
		conf.URLPrefix = "/uploads"
	}
	return &LocalFS{
		Config: conf,
	}, nil
}

// SendFile writes body to <save-path>/<fileKey>; the directory is created on demand.
// A partially written file is removed on failure.
// SendFile 写入 <save-path>/<fileKey>，目录按需创建，失败时删除未写完的文件
func (p *LocalFS) SendFile(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	dst := filepath.Join(p.Config.SavePath, filepath.FromSlash(fileKey))
	if err := fileurl.CreatePath(dst, 0754); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	_, err = io.Copy(out, &ctxReader{ctx: ctx, r: body})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", errors.Wrap(err, "local_fs")
	}

	return fileurl.JoinURL(p.Config.URLPrefix, fileKey), nil
}

// ctxReader stops copying once the context is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
