package code

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_WithDetailsDoesNotMutateRegisteredCode(t *testing.T) {
	c := ErrorFileTooLarge.WithDetails("Maximum size for image: 10MB")

	assert.True(t, c.HaveDetails())
	assert.Equal(t, []string{"Maximum size for image: 10MB"}, c.Details())
	assert.False(t, ErrorFileTooLarge.HaveDetails())
	assert.Empty(t, ErrorFileTooLarge.Details())
}

func TestCode_Is(t *testing.T) {
	wrapped := fmt.Errorf("ingest: %w", ErrorMissingText.WithDetails("note"))

	assert.True(t, errors.Is(wrapped, ErrorMissingText))
	assert.False(t, errors.Is(wrapped, ErrorMissingFile))
}

func TestCode_StatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrorInvalidURL.StatusCode())
	assert.Equal(t, http.StatusInternalServerError, ErrorUploadFileFailed.StatusCode())
	assert.Equal(t, http.StatusNotFound, ErrorVaultItemNotFound.StatusCode())
	assert.Equal(t, http.StatusOK, Success.StatusCode())
}

func TestLang_Fallback(t *testing.T) {
	defer SetGlobalDefaultLang(FALLBACK_LNG)

	assert.NoError(t, SetGlobalDefaultLang("zh_cn"))
	assert.Equal(t, "文件过大", ErrorFileTooLarge.Msg())

	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, "File too large", ErrorFileTooLarge.Msg())
}

func TestCode_MsgIn(t *testing.T) {
	assert.Equal(t, "条目不存在", ErrorVaultItemNotFound.MsgIn("zh_cn"))
	assert.Equal(t, "Vault item not found", ErrorVaultItemNotFound.MsgIn("de"))
	assert.Equal(t, ErrorVaultItemNotFound.Msg(), ErrorVaultItemNotFound.MsgIn(""))
}
