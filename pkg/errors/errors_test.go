package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/fast-vault-service/internal/middleware"
	"github.com/haierkeys/fast-vault-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.TraceIDKey, "trace-1")
	return c, w
}

func TestErrorResponse_Code(t *testing.T) {
	c, w := newTestContext()

	ErrorResponse(c, fmt.Errorf("delete: %w", code.ErrorVaultItemNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1201, body.Code)
	assert.Equal(t, "trace-1", body.TraceID)
	assert.False(t, body.Status)
}

func TestErrorResponse_Unknown(t *testing.T) {
	c, w := newTestContext()

	ErrorResponse(c, stderrors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 500, body.Code)
}

func TestErrorResponse_AppError(t *testing.T) {
	c, w := newTestContext()
	cause := stderrors.New("bucket unreachable")

	ErrorResponse(c, NewAppError(code.ErrorUploadFileFailed, cause))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Same(t, cause, stderrors.Unwrap(GetAppError(NewAppError(code.ErrorUploadFileFailed, cause))))
}
