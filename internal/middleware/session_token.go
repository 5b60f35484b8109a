package middleware

import (
	"strings"

	"github.com/haierkeys/fast-vault-service/pkg/app"
	"github.com/haierkeys/fast-vault-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// SessionTokenWithConfig 可选会话令牌中间件（使用注入的密钥）
// 没有令牌的请求按匿名处理；令牌存在但无效时返回 401
func SessionTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := lookupToken(c)
		if token == "" {
			c.Next()
			return
		}

		if err := app.SetTokenToContextWithKey(c, token, secretKey); err != nil {
			app.NewResponse(c).ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		c.Next()
	}
}

// lookupToken 按顺序查找 authorization 与 token 查询参数和请求头
func lookupToken(c *gin.Context) string {
	var token string
	if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s, exist := c.GetQuery("Authorization"); exist {
		token = s
	} else if s := c.GetHeader("Authorization"); len(s) != 0 {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	} else if s, exist := c.GetQuery("Token"); exist {
		token = s
	} else if s = c.GetHeader("Token"); len(s) != 0 {
		token = s
	}

	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
