package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/haierkeys/fast-vault-service/internal/domain"
	"github.com/haierkeys/fast-vault-service/pkg/code"

	"github.com/go-playground/validator/v10"
)

const mib = 1024 * 1024

// allowedMimeTypes declared MIME allow-list per binary type
var allowedMimeTypes = map[domain.ItemType][]string{
	domain.ItemTypeImage: {"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "image/svg+xml"},
	domain.ItemTypeVideo: {"video/mp4", "video/webm", "video/quicktime", "video/x-msvideo", "video/mpeg"},
	domain.ItemTypeVoice: {"audio/mpeg", "audio/wav", "audio/ogg", "audio/mp4", "audio/webm", "audio/x-m4a"},
}

// maxFileSizes inclusive size ceiling per binary type
var maxFileSizes = map[domain.ItemType]int64{
	domain.ItemTypeImage: 10 * mib,
	domain.ItemTypeVideo: 100 * mib,
	domain.ItemTypeVoice: 25 * mib,
}

// AllowedMimeTypes returns a copy of the allow-list for t, nil for text types
// AllowedMimeTypes 返回类型 t 的 MIME 白名单副本，文本类型返回 nil
func AllowedMimeTypes(t domain.ItemType) []string {
	list, ok := allowedMimeTypes[t]
	if !ok {
		return nil
	}
	return append([]string(nil), list...)
}

// MaxFileSize returns the inclusive size ceiling for t, 0 for text types
// MaxFileSize 返回类型 t 的大小上限（含），文本类型返回 0
func MaxFileSize(t domain.ItemType) int64 {
	return maxFileSizes[t]
}

// FilePart is an uploaded file as declared by the client
// FilePart 客户端上传的文件及其声明信息
type FilePart struct {
	Filename string
	MimeType string
	Size     int64
	Body     io.Reader
}

// Submission is one raw inbound item
// Submission 一次原始的入库提交
type Submission struct {
	Type  string
	File  *FilePart
	Text  *string
	Title *string
}

// ValidatedSubmission carries only the fields its type uses:
// File for binary types and Text for note and link.
// ValidatedSubmission 仅携带其类型使用的字段：二进制类型为 File，note 与 link 为 Text
type ValidatedSubmission struct {
	Type  domain.ItemType
	File  *FilePart
	Text  *string
	Title *string
}

// IngestValidator applies the per type rules; it performs no I/O
// IngestValidator 按类型执行校验规则，不做任何 I/O
type IngestValidator struct {
	validate *validator.Validate
}

func NewIngestValidator() *IngestValidator {
	return &IngestValidator{validate: validator.New()}
}

// Validate returns the first failing rule as a *code.Code
// Validate 以 *code.Code 返回第一个失败的规则
func (v *IngestValidator) Validate(s *Submission) (*ValidatedSubmission, error) {
	if s == nil || s.Type == "" {
		return nil, code.ErrorInvalidItemType.WithDetails("Type is required")
	}

	itemType, ok := domain.ParseItemType(s.Type)
	if !ok {
		return nil, code.ErrorInvalidItemType.WithDetails(fmt.Sprintf("Unknown type: %s", s.Type))
	}

	out := &ValidatedSubmission{Type: itemType, Title: s.Title}

	if itemType.IsBinary() {
		if err := v.validateFile(itemType, s.File); err != nil {
			return nil, err
		}
		out.File = s.File
		return out, nil
	}

	// 文本类型忽略附带的文件
	if err := v.validateText(itemType, s.Text); err != nil {
		return nil, err
	}
	out.Text = s.Text
	return out, nil
}

func (v *IngestValidator) validateFile(t domain.ItemType, f *FilePart) error {
	if f == nil {
		return code.ErrorMissingFile.WithDetails(fmt.Sprintf("File is required for %s type", t))
	}

	allowed := allowedMimeTypes[t]
	if !containsString(allowed, f.MimeType) {
		return code.ErrorUnsupportedMimeType.WithDetails(
			fmt.Sprintf("Allowed types for %s: %s", t, strings.Join(allowed, ", ")),
		)
	}

	if limit := maxFileSizes[t]; f.Size > limit {
		return code.ErrorFileTooLarge.WithDetails(
			fmt.Sprintf("Maximum size for %s: %dMB", t, limit/mib),
		)
	}
	return nil
}

func (v *IngestValidator) validateText(t domain.ItemType, text *string) error {
	if text == nil || *text == "" {
		return code.ErrorMissingText.WithDetails(fmt.Sprintf("Text content is required for %s type", t))
	}

	if t == domain.ItemTypeLink {
		if err := v.validate.Var(*text, "url"); err != nil {
			return code.ErrorInvalidURL.WithDetails(*text)
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
