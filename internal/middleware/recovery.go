package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/fast-vault-service/pkg/app"
	"github.com/haierkeys/fast-vault-service/pkg/code"
	"github.com/haierkeys/fast-vault-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件（支持依赖注入）
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if r := recover(); r != nil {
				fields := []zap.Field{
					zap.String("router", path),
					zap.String(logger.FieldMethod, c.Request.Method),
					zap.String("query", query),
					zap.String("ip", app.GetRequestIP(c)),
					zap.String("user-agent", c.Request.UserAgent()),
					zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
					zap.String("stack", string(debug.Stack())), // 错误堆栈
				}

				var errorMsg string
				switch v := r.(type) {
				case error:
					errorMsg = v.Error()
					lg.Error("Recovered from panic", append(fields, zap.Error(v))...)
				case string:
					errorMsg = v
					lg.Error("Recovered from panic", append(fields, zap.String("panic_value", v))...)
				default:
					// 其它类型的 panic
					errorMsg = fmt.Sprintf("%v", v)
					lg.Error("Recovered from unknown panic", append(fields, zap.String("panic_value", errorMsg))...)
				}

				// 返回统一的错误响应
				app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(errorMsg))
				c.Abort()
			}
		}()

		c.Next()
	}
}
