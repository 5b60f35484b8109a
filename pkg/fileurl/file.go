package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// GetFileExt gets the file extension without the leading dot, lower-cased.
// Returns an empty string when the name has no extension.
// GetFileExt 获取不带点的小写文件后缀，没有后缀时返回空字符串
func GetFileExt(name string) string {
	ext := path.Ext(path.Base(strings.ReplaceAll(name, "\\", "/")))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// PathSuffixCheckAdd checks path suffix, adds it if not exists.
// An empty path stays empty.
// PathSuffixCheckAdd 检查路径后缀，如果没有则添加；空路径保持为空
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" {
		return ""
	}
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}

// JoinURL joins a base url and a key with exactly one slash between them
// JoinURL 使用单个斜杠拼接基础 URL 与对象键
func JoinURL(base string, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}
