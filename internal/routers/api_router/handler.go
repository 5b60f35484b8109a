// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"
	"errors"

	"github.com/haierkeys/fast-vault-service/internal/app"
	"github.com/haierkeys/fast-vault-service/internal/domain"
	"github.com/haierkeys/fast-vault-service/internal/middleware"
	pkgapp "github.com/haierkeys/fast-vault-service/pkg/app"
	"github.com/haierkeys/fast-vault-service/pkg/code"
	"github.com/haierkeys/fast-vault-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录服务层错误；客户端错误只记 warn
func (h *Handler) logError(ctx context.Context, method string, err error) {
	fields := []zap.Field{
		zap.String(logger.FieldMethod, method),
		zap.String(logger.FieldTraceID, middleware.GetTraceID(ctx)),
		zap.Error(err),
	}

	var c *code.Code
	if errors.As(err, &c) && c.StatusCode() < 500 {
		h.App.Logger().Warn(method, fields...)
		return
	}
	h.App.Logger().Error(method, fields...)
}

// callerOwner 会话中的所有者，匿名请求为 Public
func callerOwner(c *gin.Context) domain.Owner {
	if id, ok := pkgapp.GetOwnerID(c); ok {
		return domain.Owned(id)
	}
	return domain.Public
}
