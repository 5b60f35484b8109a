package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/fast-vault-service/pkg/fileurl"
	"github.com/haierkeys/fast-vault-service/pkg/util"
)

// RandomSuffixLength length of the random part of generated filenames
// RandomSuffixLength 生成文件名中随机部分的长度
const RandomSuffixLength = 8

const defaultContentType = "application/octet-stream"

// per type extension → MIME tables used for uploads
var contentTypes = map[string]map[string]string{
	"image": {
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"gif":  "image/gif",
		"webp": "image/webp",
		"svg":  "image/svg+xml",
	},
	"video": {
		"mp4":  "video/mp4",
		"webm": "video/webm",
		"mov":  "video/quicktime",
		"avi":  "video/x-msvideo",
	},
	"voice": {
		"mp3":  "audio/mpeg",
		"wav":  "audio/wav",
		"ogg":  "audio/ogg",
		"m4a":  "audio/mp4",
		"webm": "audio/webm",
	},
}

var wildcardTypes = map[string]string{
	"image": "image/*",
	"video": "video/*",
	"voice": "audio/*",
}

// GenerateFilename builds "<type>-<unix millis>-<random>[.<ext>]" keeping the original extension lower-cased
// GenerateFilename 生成 "<类型>-<毫秒时间戳>-<随机串>[.<后缀>]"，保留原始后缀并转为小写
func GenerateFilename(itemType string, originalName string, now time.Time) string {
	name := fmt.Sprintf("%s-%d-%s", itemType, now.UnixMilli(), util.GetRandomLowerString(RandomSuffixLength))
	if ext := fileurl.GetFileExt(originalName); ext != "" {
		name += "." + ext
	}
	return name
}

// ContentType derives the upload content type from the filename extension and item type
// ContentType 根据文件后缀与条目类型推导上传使用的内容类型
func ContentType(filename string, itemType string) string {
	table, ok := contentTypes[itemType]
	if !ok {
		return defaultContentType
	}
	if ct, ok := table[strings.ToLower(fileurl.GetFileExt(filename))]; ok {
		return ct
	}
	return wildcardTypes[itemType]
}
